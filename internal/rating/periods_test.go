package rating

import (
	"errors"
	"testing"
	"time"
)

func TestNewPeriodClock_Validation(t *testing.T) {
	if _, err := NewPeriodClock(0); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for zero length, got %v", err)
	}
	if _, err := NewPeriodClock(-time.Hour); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for negative length, got %v", err)
	}
	if _, err := NewPeriodClock(7 * 24 * time.Hour); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPeriodClock_Periods(t *testing.T) {
	week := 7 * 24 * time.Hour
	clock, err := NewPeriodClock(week)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{name: "zero elapsed", elapsed: 0, want: 0},
		{name: "negative elapsed clamps to zero", elapsed: -time.Hour, want: 0},
		{name: "under one period", elapsed: week - time.Second, want: 0},
		{name: "exactly one period", elapsed: week, want: 1},
		{name: "just over one period", elapsed: week + time.Second, want: 1},
		{name: "several periods", elapsed: 3*week + 2*time.Hour, want: 3},
		{name: "long absence", elapsed: 52 * week, want: 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clock.Periods(tt.elapsed); got != tt.want {
				t.Errorf("Periods(%v) = %d, want %d", tt.elapsed, got, tt.want)
			}
		})
	}
}
