package rankingservice

import (
	"time"

	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// CreateRankingInput opens a new ranking in a guild. Zero-valued tunables
// fall back to the app-level rating defaults.
type CreateRankingInput struct {
	GuildID  sharedtypes.GuildID  `json:"guild_id"`
	Name     string               `json:"name"`
	Strategy rating.StrategyName  `json:"strategy,omitempty"`

	Scale         float64 `json:"scale,omitempty"`
	DefaultRating float64 `json:"default_rating,omitempty"`
	Tau           float64 `json:"tau,omitempty"`

	InitialRating     float64 `json:"initial_rating,omitempty"`
	InitialDeviation  float64 `json:"initial_deviation,omitempty"`
	InitialVolatility float64 `json:"initial_volatility,omitempty"`

	PeriodLength time.Duration `json:"period_length,omitempty"`
	WinDiffStep  float64       `json:"win_diff_step,omitempty"`
}

// UpdateConfigInput changes a ranking's tunables. Nil fields stay untouched.
type UpdateConfigInput struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`

	Name *string `json:"name,omitempty"`

	Scale         *float64 `json:"scale,omitempty"`
	DefaultRating *float64 `json:"default_rating,omitempty"`
	Tau           *float64 `json:"tau,omitempty"`

	InitialRating     *float64 `json:"initial_rating,omitempty"`
	InitialDeviation  *float64 `json:"initial_deviation,omitempty"`
	InitialVolatility *float64 `json:"initial_volatility,omitempty"`

	PeriodLength *time.Duration `json:"period_length,omitempty"`
	WinDiffStep  *float64       `json:"win_diff_step,omitempty"`
}

// ChangeStrategyInput switches a ranking's scoring strategy. All stored
// ratings are invalidated and a full rescore follows.
type ChangeStrategyInput struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	Strategy  rating.StrategyName   `json:"strategy"`
}

// GetRankingInput fetches one ranking.
type GetRankingInput struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
}

// RankingCreatedPayload is the success payload of CreateRanking.
type RankingCreatedPayload struct {
	Ranking *rankingtypes.Ranking `json:"ranking"`
}

// ConfigUpdatedPayload is the success payload of UpdateConfig.
// RescoreRequired is set when a rating tunable changed, meaning stored
// ratings no longer reflect the config and history must replay.
type ConfigUpdatedPayload struct {
	Ranking         *rankingtypes.Ranking `json:"ranking"`
	RescoreRequired bool                  `json:"rescore_required"`
}

// StrategyChangedPayload is the success payload of ChangeStrategy.
type StrategyChangedPayload struct {
	Ranking *rankingtypes.Ranking `json:"ranking"`
}

// RankingRetrievedPayload is the success payload of GetRanking.
type RankingRetrievedPayload struct {
	Ranking *rankingtypes.Ranking `json:"ranking"`
}

// RankingListPayload is the success payload of ListRankings.
type RankingListPayload struct {
	GuildID  sharedtypes.GuildID     `json:"guild_id"`
	Rankings []*rankingtypes.Ranking `json:"rankings"`
}

// RankingFailurePayload is the shared domain-failure payload.
type RankingFailurePayload struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id,omitempty"`
	Reason    string                `json:"reason"`
}
