package matchservice

import (
	"time"

	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// TeamInput is one side of a match as submitted by a caller.
type TeamInput struct {
	Players []sharedtypes.DiscordID `json:"players"`
}

// StartMatchInput opens an ongoing match.
type StartMatchInput struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	Teams     []TeamInput           `json:"teams"`
	CreatedBy sharedtypes.DiscordID `json:"created_by"`
	// TimeStarted defaults to now when zero.
	TimeStarted time.Time `json:"time_started,omitempty"`
}

// RecordOutcomeInput finalizes an ongoing match with a result. A past
// TimeFinished backdates the match; the rescorer replays everything finished
// after it.
type RecordOutcomeInput struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	MatchID sharedtypes.MatchID `json:"match_id"`
	// Outcome holds one relative score per team, aligned with the match's
	// teams. Higher beats lower; equal scores draw.
	Outcome []int `json:"outcome"`
	// TimeFinished defaults to now when zero.
	TimeFinished time.Time `json:"time_finished,omitempty"`
}

// UpdateOutcomeInput retroactively edits a finished match.
type UpdateOutcomeInput struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	MatchID sharedtypes.MatchID `json:"match_id"`
	// Outcome, when non-nil, replaces the stored outcome.
	Outcome []int `json:"outcome,omitempty"`
	// TimeFinished, when non-nil, moves the match in history.
	TimeFinished *time.Time `json:"time_finished,omitempty"`
}

// CancelMatchInput cancels a match. Canceling a finished match removes it
// from rating history and triggers a rescore.
type CancelMatchInput struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	MatchID sharedtypes.MatchID `json:"match_id"`
}

// RescoreInput asks for a replay of a ranking's finished matches from Since
// onward. AffectedRatings supplies pre-window ratings for players whose
// stored snapshots can no longer be trusted (the players of a mutated
// match). ResetToInitial discards all state and replays from the beginning.
type RescoreInput struct {
	GuildID         sharedtypes.GuildID                     `json:"guild_id"`
	RankingID       sharedtypes.RankingID                   `json:"ranking_id"`
	Since           time.Time                               `json:"since"`
	AffectedRatings map[sharedtypes.DiscordID]rating.Rating `json:"affected_ratings,omitempty"`
	ResetToInitial  bool                                    `json:"reset_to_initial,omitempty"`
}

// MatchStartedPayload is the success payload of StartMatch.
type MatchStartedPayload struct {
	Match *matchtypes.Match `json:"match"`
}

// MatchFinalizedPayload is the success payload of RecordOutcome.
type MatchFinalizedPayload struct {
	Match           *matchtypes.Match `json:"match"`
	RescoredMatches int               `json:"rescored_matches"`
}

// OutcomeUpdatedPayload is the success payload of UpdateOutcome.
type OutcomeUpdatedPayload struct {
	Match           *matchtypes.Match `json:"match"`
	RescoredMatches int               `json:"rescored_matches"`
}

// MatchCanceledPayload is the success payload of CancelMatch.
type MatchCanceledPayload struct {
	Match           *matchtypes.Match `json:"match"`
	RescoredMatches int               `json:"rescored_matches"`
}

// RescorePayload is the success payload of Rescore.
type RescorePayload struct {
	RankingID       sharedtypes.RankingID `json:"ranking_id"`
	RescoredMatches int                   `json:"rescored_matches"`
	PlayersUpdated  int                   `json:"players_updated"`
}

// MatchFailurePayload is the domain-failure payload shared by all match
// operations.
type MatchFailurePayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	MatchID sharedtypes.MatchID `json:"match_id,omitempty"`
	Reason  string              `json:"reason"`
}
