package rating

import "fmt"

// StrategyName selects a ranking's scoring method.
type StrategyName string

const (
	// StrategyGlicko2 is the full Glicko-2 engine.
	StrategyGlicko2 StrategyName = "glicko2"
	// StrategyWinDiff is a plain win/loss-difference ladder.
	StrategyWinDiff StrategyName = "win_diff"
)

// Valid reports whether the name is a known strategy.
func (n StrategyName) Valid() bool {
	return n == StrategyGlicko2 || n == StrategyWinDiff
}

// PlayerState is one party's input to a pairwise update.
type PlayerState struct {
	Rating Rating
	// InactivePeriods is the count of whole rating periods since the
	// player's last match. Zero for a fresh player.
	InactivePeriods int
}

// Strategy computes both parties' post-match ratings from one pairwise
// result. Implementations must be pure and deterministic.
type Strategy interface {
	Name() StrategyName
	Update(p1, p2 PlayerState, result float64) (Rating, Rating, error)
}

// StrategyConfig carries everything needed to build any strategy.
type StrategyConfig struct {
	Glicko GlickoParams
	// WinDiffStep is the rating delta per win for the win/loss strategy.
	WinDiffStep float64
}

// NewStrategy builds the named strategy from config.
func NewStrategy(name StrategyName, cfg StrategyConfig) (Strategy, error) {
	switch name {
	case StrategyGlicko2:
		engine, err := NewGlicko(cfg.Glicko)
		if err != nil {
			return nil, err
		}
		return &glickoStrategy{engine: engine}, nil
	case StrategyWinDiff:
		return NewWinDiff(cfg.WinDiffStep)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidParams, name)
	}
}

type glickoStrategy struct {
	engine *Glicko
}

func (s *glickoStrategy) Name() StrategyName { return StrategyGlicko2 }

func (s *glickoStrategy) Update(p1, p2 PlayerState, result float64) (Rating, Rating, error) {
	return s.engine.Update(p1.Rating, p2.Rating, result, p1.InactivePeriods, p2.InactivePeriods)
}
