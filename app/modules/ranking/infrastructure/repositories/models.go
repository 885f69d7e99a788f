package rankingdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// Ranking is the persistence model for one ladder within a guild.
type Ranking struct {
	bun.BaseModel `bun:"table:rankings,alias:rk"`

	ID       sharedtypes.RankingID `bun:"id,pk,type:uuid"`
	GuildID  sharedtypes.GuildID   `bun:"guild_id,notnull"`
	Name     string                `bun:"name,notnull"`
	Strategy rating.StrategyName   `bun:"strategy,notnull"`

	Scale         float64 `bun:"scale,notnull"`
	DefaultRating float64 `bun:"default_rating,notnull"`
	Tau           float64 `bun:"tau,notnull"`

	InitialRating     float64 `bun:"initial_rating,notnull"`
	InitialDeviation  float64 `bun:"initial_deviation,notnull"`
	InitialVolatility float64 `bun:"initial_volatility,notnull"`

	PeriodLengthSeconds int64   `bun:"period_length_seconds,notnull"`
	WinDiffStep         float64 `bun:"win_diff_step,notnull"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func toDomain(m *Ranking) *rankingtypes.Ranking {
	return &rankingtypes.Ranking{
		ID:                m.ID,
		GuildID:           m.GuildID,
		Name:              m.Name,
		Strategy:          m.Strategy,
		Scale:             m.Scale,
		DefaultRating:     m.DefaultRating,
		Tau:               m.Tau,
		InitialRating:     m.InitialRating,
		InitialDeviation:  m.InitialDeviation,
		InitialVolatility: m.InitialVolatility,
		PeriodLength:      time.Duration(m.PeriodLengthSeconds) * time.Second,
		WinDiffStep:       m.WinDiffStep,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func fromDomain(r *rankingtypes.Ranking) *Ranking {
	return &Ranking{
		ID:                  r.ID,
		GuildID:             r.GuildID,
		Name:                r.Name,
		Strategy:            r.Strategy,
		Scale:               r.Scale,
		DefaultRating:       r.DefaultRating,
		Tau:                 r.Tau,
		InitialRating:       r.InitialRating,
		InitialDeviation:    r.InitialDeviation,
		InitialVolatility:   r.InitialVolatility,
		PeriodLengthSeconds: int64(r.PeriodLength / time.Second),
		WinDiffStep:         r.WinDiffStep,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}
