package rating

import (
	"fmt"
	"math"
)

const (
	// DefaultScale is the conversion factor between the public 1500-style
	// scale and the internal Glicko-2 scale.
	DefaultScale = 173.7178

	// convergenceTolerance ends the volatility iteration once the bracket
	// collapses below it.
	convergenceTolerance = 1e-6

	// maxVolatilityIterations bounds the Illinois loop. The solver converges
	// in well under 30 iterations for any sane input; hitting the bound means
	// the parameters are broken.
	maxVolatilityIterations = 100
)

// GlickoParams are the per-ranking tunables of the Glicko-2 engine.
type GlickoParams struct {
	// Scale converts between public ratings and the internal mu/phi scale.
	Scale float64
	// DefaultRating is the public rating that maps to mu = 0.
	DefaultRating float64
	// Tau constrains volatility change per update. Smaller values keep
	// volatility more stable; 0.3 to 1.2 are reasonable.
	Tau float64
}

// Glicko computes two-party Glicko-2 updates. It is stateless and safe for
// concurrent use.
type Glicko struct {
	params GlickoParams
}

// NewGlicko validates params and returns an update engine.
func NewGlicko(params GlickoParams) (*Glicko, error) {
	if params.Scale <= 0 || params.Tau <= 0 {
		return nil, fmt.Errorf("%w: scale=%v tau=%v", ErrInvalidParams, params.Scale, params.Tau)
	}
	for _, v := range []float64{params.Scale, params.DefaultRating, params.Tau} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %+v", ErrNonFiniteInput, params)
		}
	}
	return &Glicko{params: params}, nil
}

// Update computes both parties' post-match parameters from one match result.
//
// The result is from p1's perspective: 1 win, 0.5 draw, 0 loss. inactive1 and
// inactive2 are the whole rating periods each party sat out since their last
// match; each party's deviation is decayed for those periods before the match
// update is applied. The function is pure: identical inputs yield bit-identical
// outputs, and no wall-clock time is read.
func (g *Glicko) Update(p1, p2 Rating, result float64, inactive1, inactive2 int) (Rating, Rating, error) {
	if !validResult(result) {
		return Rating{}, Rating{}, fmt.Errorf("%w: result must be 0, 0.5 or 1, got %v", ErrInvalidParams, result)
	}
	if err := validateRating(p1); err != nil {
		return Rating{}, Rating{}, err
	}
	if err := validateRating(p2); err != nil {
		return Rating{}, Rating{}, err
	}
	if inactive1 < 0 || inactive2 < 0 {
		return Rating{}, Rating{}, fmt.Errorf("%w: negative inactive periods", ErrInvalidParams)
	}

	// Step 1: convert to the internal scale.
	mu1, phi1 := g.toInternal(p1)
	mu2, phi2 := g.toInternal(p2)

	// Step 2: grow each deviation for missed rating periods before the
	// match itself is scored.
	phi1 = decayPhi(phi1, p1.Volatility, inactive1)
	phi2 = decayPhi(phi2, p2.Volatility, inactive2)

	n1, err := g.updateOne(mu1, phi1, p1.Volatility, mu2, phi2, result)
	if err != nil {
		return Rating{}, Rating{}, err
	}
	n2, err := g.updateOne(mu2, phi2, p2.Volatility, mu1, phi1, Invert(result))
	if err != nil {
		return Rating{}, Rating{}, err
	}
	return n1, n2, nil
}

// DecayOnly applies inactivity decay without a match update. Used when a
// rating needs to be aged to "now" for display without scoring anything.
func (g *Glicko) DecayOnly(p Rating, periods int) (Rating, error) {
	if err := validateRating(p); err != nil {
		return Rating{}, err
	}
	mu, phi := g.toInternal(p)
	phi = decayPhi(phi, p.Volatility, periods)
	return g.toPublic(mu, phi, p.Volatility), nil
}

// Params returns the engine's configuration.
func (g *Glicko) Params() GlickoParams { return g.params }

func (g *Glicko) toInternal(p Rating) (mu, phi float64) {
	return (p.Rating - g.params.DefaultRating) / g.params.Scale, p.Deviation / g.params.Scale
}

func (g *Glicko) toPublic(mu, phi, sigma float64) Rating {
	return Rating{
		Rating:     mu*g.params.Scale + g.params.DefaultRating,
		Deviation:  phi * g.params.Scale,
		Volatility: sigma,
	}
}

// decayPhi grows phi for t missed rating periods: phi' = sqrt(phi² + t·sigma²).
// t == 0 returns phi untouched so a zero-decay call is bit-identical to no
// decay at all.
func decayPhi(phi, sigma float64, t int) float64 {
	if t == 0 {
		return phi
	}
	return math.Sqrt(phi*phi + float64(t)*sigma*sigma)
}

// updateOne computes one party's post-match state against a fixed opponent.
func (g *Glicko) updateOne(mu, phi, sigma, muOpp, phiOpp, score float64) (Rating, error) {
	// Step 3: estimated variance and improvement from this single outcome.
	gw := weight(phiOpp)
	e := expectation(mu, muOpp, gw)
	v := 1 / (gw * gw * e * (1 - e))
	delta := v * gw * (score - e)

	// Step 4: new volatility via the Illinois method.
	sigmaNew, err := solveVolatility(delta, phi, v, sigma, g.params.Tau)
	if err != nil {
		return Rating{}, fmt.Errorf("%w: delta=%v phi=%v v=%v sigma=%v tau=%v",
			err, delta, phi, v, sigma, g.params.Tau)
	}

	// Steps 5-6: shrink the deviation by the new information, then move the
	// rating by the weighted surprise.
	phiStar := math.Sqrt(phi*phi + sigmaNew*sigmaNew)
	phiNew := 1 / math.Sqrt(1/(phiStar*phiStar)+1/v)
	muNew := mu + phiNew*phiNew*gw*(score-e)

	// Step 7: back to the public scale.
	return g.toPublic(muNew, phiNew, sigmaNew), nil
}

// weight is g(phi): reduces the influence of opponents with uncertain ratings.
func weight(phi float64) float64 {
	return 1 / math.Sqrt(1+3*phi*phi/(math.Pi*math.Pi))
}

// expectation is E(mu, muOpp, g(phiOpp)): the expected score against the
// opponent.
func expectation(mu, muOpp, gw float64) float64 {
	return 1 / (1 + math.Exp(-gw*(mu-muOpp)))
}

// solveVolatility finds sigma' as the root of the Glicko-2 volatility
// function f(x) on x = ln(sigma'²), using the Illinois variant of regula
// falsi exactly as laid out in the paper.
func solveVolatility(delta, phi, v, sigma, tau float64) (float64, error) {
	a := math.Log(sigma * sigma)
	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (delta*delta - phi*phi - v - ex)
		den := 2 * (phi*phi + v + ex) * (phi*phi + v + ex)
		return num/den - (x-a)/(tau*tau)
	}

	// Bracket the root.
	capA := a
	var capB float64
	if delta*delta > phi*phi+v {
		capB = math.Log(delta*delta - phi*phi - v)
	} else {
		k := 1.0
		for f(a-k*tau) < 0 {
			k++
			if k > float64(maxVolatilityIterations) {
				return 0, ErrNoConvergence
			}
		}
		capB = a - k*tau
	}

	fA := f(capA)
	fB := f(capB)
	for i := 0; math.Abs(capB-capA) > convergenceTolerance; i++ {
		if i >= maxVolatilityIterations {
			return 0, ErrNoConvergence
		}
		capC := capA + (capA-capB)*fA/(fB-fA)
		fC := f(capC)
		if math.IsNaN(fC) || math.IsInf(fC, 0) {
			return 0, ErrNoConvergence
		}
		if fC*fB <= 0 {
			capA = capB
			fA = fB
		} else {
			// Illinois step: halve the retained side to guarantee progress.
			fA /= 2
		}
		capB = capC
		fB = fC
	}

	return math.Exp(capA / 2), nil
}
