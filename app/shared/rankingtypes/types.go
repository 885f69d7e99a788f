// Package rankingtypes defines the ranking configuration shared by modules.
package rankingtypes

import (
	"time"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// Ranking owns the scoring strategy and tunables for one ladder within a
// guild. Changing the strategy invalidates every stored rating and requires
// a full rescore.
type Ranking struct {
	ID      sharedtypes.RankingID
	GuildID sharedtypes.GuildID
	Name    string

	Strategy rating.StrategyName

	// Glicko-2 tunables.
	Scale         float64
	DefaultRating float64
	Tau           float64

	// Initial rating state granted at player registration.
	InitialRating     float64
	InitialDeviation  float64
	InitialVolatility float64

	// PeriodLength is the rating-period span for inactivity decay.
	PeriodLength time.Duration

	// WinDiffStep is the per-win delta for the win/loss-difference strategy.
	WinDiffStep float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Initial returns the rating granted to a fresh player in this ranking.
func (r *Ranking) Initial() rating.Rating {
	return rating.Rating{
		Rating:     r.InitialRating,
		Deviation:  r.InitialDeviation,
		Volatility: r.InitialVolatility,
	}
}

// StrategyConfig maps the ranking's tunables onto the rating engine's config.
func (r *Ranking) StrategyConfig() rating.StrategyConfig {
	return rating.StrategyConfig{
		Glicko: rating.GlickoParams{
			Scale:         r.Scale,
			DefaultRating: r.DefaultRating,
			Tau:           r.Tau,
		},
		WinDiffStep: r.WinDiffStep,
	}
}

// NewStrategy builds the ranking's configured strategy.
func (r *Ranking) NewStrategy() (rating.Strategy, error) {
	return rating.NewStrategy(r.Strategy, r.StrategyConfig())
}

// PeriodClock builds the ranking's inactivity clock.
func (r *Ranking) PeriodClock() (rating.PeriodClock, error) {
	return rating.NewPeriodClock(r.PeriodLength)
}
