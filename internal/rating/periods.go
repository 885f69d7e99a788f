package rating

import (
	"fmt"
	"time"
)

// PeriodClock translates elapsed wall-clock time between a player's matches
// into a count of whole rating periods for inactivity decay. The clock never
// reads the wall clock itself; callers supply the elapsed duration.
type PeriodClock struct {
	periodLength time.Duration
}

// NewPeriodClock returns a clock for the given period length.
func NewPeriodClock(periodLength time.Duration) (PeriodClock, error) {
	if periodLength <= 0 {
		return PeriodClock{}, fmt.Errorf("%w: rating period length must be positive, got %v", ErrInvalidParams, periodLength)
	}
	return PeriodClock{periodLength: periodLength}, nil
}

// Periods returns floor(elapsed / periodLength), clamped to zero. A fresh
// player with no prior match gets zero periods, so no decay applies.
func (c PeriodClock) Periods(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / c.periodLength)
}

// PeriodLength returns the configured period length.
func (c PeriodClock) PeriodLength() time.Duration { return c.periodLength }
