package rating

import (
	"fmt"
	"math"
)

// WinDiff is the win/loss-difference ladder: a win moves the rating up one
// step, a loss down one step, a draw not at all. Deviation and volatility are
// carried through untouched and inactivity has no effect.
type WinDiff struct {
	step float64
}

// NewWinDiff returns a win/loss-difference strategy with the given step.
func NewWinDiff(step float64) (*WinDiff, error) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: win-diff step must be a positive finite number, got %v", ErrInvalidParams, step)
	}
	return &WinDiff{step: step}, nil
}

// Name implements Strategy.
func (w *WinDiff) Name() StrategyName { return StrategyWinDiff }

// Update implements Strategy. result is from p1's perspective.
func (w *WinDiff) Update(p1, p2 PlayerState, result float64) (Rating, Rating, error) {
	if !validResult(result) {
		return Rating{}, Rating{}, fmt.Errorf("%w: result must be 0, 0.5 or 1, got %v", ErrInvalidParams, result)
	}
	if err := validateRating(p1.Rating); err != nil {
		return Rating{}, Rating{}, err
	}
	if err := validateRating(p2.Rating); err != nil {
		return Rating{}, Rating{}, err
	}

	// result 1 -> +step / -step, 0.5 -> no movement, 0 -> -step / +step.
	shift := (result - Draw) * 2 * w.step
	n1 := p1.Rating
	n2 := p2.Rating
	n1.Rating += shift
	n2.Rating -= shift
	return n1, n2, nil
}
