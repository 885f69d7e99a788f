// Package rating implements the skill-rating engine used by the match and
// ranking modules: the Glicko-2 two-party update, rating-period inactivity
// handling, and the simpler win/loss-difference strategy.
//
// Variable names in the Glicko-2 code follow the conventions of Professor
// Mark E. Glickman's paper (https://www.glicko.net/glicko/glicko2.pdf):
// Mu and Phi are the rating and deviation on the internal scale, Sigma is
// the volatility, and Tau constrains how fast volatility may change.
package rating

import (
	"errors"
	"fmt"
	"math"
)

// Rating holds a player's public-scale rating state for one ranking.
type Rating struct {
	Rating     float64 `json:"rating"`
	Deviation  float64 `json:"deviation"`
	Volatility float64 `json:"volatility"`
}

// IsZero reports whether the rating carries no state at all.
func (r Rating) IsZero() bool {
	return r.Rating == 0 && r.Deviation == 0 && r.Volatility == 0
}

var (
	// ErrInvalidParams indicates a misconfigured ranking (non-positive tau,
	// scale, or period length).
	ErrInvalidParams = errors.New("invalid rating parameters")

	// ErrNonFiniteInput indicates a NaN or Inf snuck into a rating update.
	ErrNonFiniteInput = errors.New("non-finite rating input")

	// ErrNoConvergence indicates the volatility solver failed to converge.
	// With valid parameters this does not happen; treat it as a bug signal.
	ErrNoConvergence = errors.New("volatility iteration did not converge")
)

// validateRating rejects non-finite or non-positive state before it can
// poison the solver.
func validateRating(r Rating) error {
	for _, v := range []float64{r.Rating, r.Deviation, r.Volatility} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %+v", ErrNonFiniteInput, r)
		}
	}
	if r.Deviation <= 0 || r.Volatility <= 0 {
		return fmt.Errorf("%w: deviation and volatility must be positive, got %+v", ErrInvalidParams, r)
	}
	return nil
}

func validResult(result float64) bool {
	return result == Win || result == Draw || result == Loss
}

// Result values from the first party's perspective.
const (
	Win  = 1.0
	Draw = 0.5
	Loss = 0.0
)

// Invert flips a result to the opposing party's perspective.
func Invert(result float64) float64 { return 1 - result }
