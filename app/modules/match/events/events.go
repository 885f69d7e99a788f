// Package matchevents defines the match module's topics and wire payloads.
package matchevents

import (
	"time"

	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// Request topics consumed by the match router.
const (
	MatchStartRequest   = "match.start.request"
	MatchRecordRequest  = "match.record.request"
	MatchUpdateRequest  = "match.update.request"
	MatchCancelRequest  = "match.cancel.request"
	MatchRescoreRequest = "match.rescore.request"
)

// Result topics published after handling.
const (
	MatchStarted       = "match.started"
	MatchStartFailed   = "match.start.failed"
	MatchFinalized     = "match.finalized"
	MatchRecordFailed  = "match.record.failed"
	MatchUpdated       = "match.updated"
	MatchUpdateFailed  = "match.update.failed"
	MatchCanceled      = "match.canceled"
	MatchCancelFailed  = "match.cancel.failed"
	MatchRescored      = "match.rescored"
	MatchRescoreFailed = "match.rescore.failed"
)

// TeamPayload is one side of a match on the wire.
type TeamPayload struct {
	Players []sharedtypes.DiscordID `json:"players"`
}

// MatchStartRequestPayloadV1 asks to open a match.
type MatchStartRequestPayloadV1 struct {
	GuildID     sharedtypes.GuildID   `json:"guild_id"`
	RankingID   sharedtypes.RankingID `json:"ranking_id"`
	Teams       []TeamPayload         `json:"teams"`
	CreatedBy   sharedtypes.DiscordID `json:"created_by"`
	TimeStarted time.Time             `json:"time_started,omitempty"`
}

// MatchRecordRequestPayloadV1 asks to finalize a match with an outcome.
// FinishedAtText backdates the match with a natural-language time like
// "yesterday 8pm"; it is ignored when TimeFinished is set explicitly.
type MatchRecordRequestPayloadV1 struct {
	GuildID        sharedtypes.GuildID `json:"guild_id"`
	MatchID        sharedtypes.MatchID `json:"match_id"`
	Outcome        []int               `json:"outcome"`
	TimeFinished   time.Time           `json:"time_finished,omitempty"`
	FinishedAtText string              `json:"finished_at_text,omitempty"`
	Timezone       string              `json:"timezone,omitempty"`
}

// MatchUpdateRequestPayloadV1 asks to retroactively edit a finished match.
type MatchUpdateRequestPayloadV1 struct {
	GuildID        sharedtypes.GuildID `json:"guild_id"`
	MatchID        sharedtypes.MatchID `json:"match_id"`
	Outcome        []int               `json:"outcome,omitempty"`
	TimeFinished   *time.Time          `json:"time_finished,omitempty"`
	FinishedAtText string              `json:"finished_at_text,omitempty"`
	Timezone       string              `json:"timezone,omitempty"`
}

// MatchCancelRequestPayloadV1 asks to cancel a match.
type MatchCancelRequestPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	MatchID sharedtypes.MatchID `json:"match_id"`
}

// MatchRescoreRequestPayloadV1 asks for a replay of a ranking's history.
// ResetToInitial forces a full replay from the ranking's initial values,
// used after a strategy change.
type MatchRescoreRequestPayloadV1 struct {
	GuildID        sharedtypes.GuildID   `json:"guild_id"`
	RankingID      sharedtypes.RankingID `json:"ranking_id"`
	Since          time.Time             `json:"since,omitempty"`
	ResetToInitial bool                  `json:"reset_to_initial,omitempty"`
}

// MatchStartedPayloadV1 announces a newly opened match.
type MatchStartedPayloadV1 struct {
	Match *matchtypes.Match `json:"match"`
}

// MatchFinalizedPayloadV1 announces a finalized match and how much history
// was replayed behind it.
type MatchFinalizedPayloadV1 struct {
	Match           *matchtypes.Match `json:"match"`
	RescoredMatches int               `json:"rescored_matches"`
}

// MatchUpdatedPayloadV1 announces a retroactive edit.
type MatchUpdatedPayloadV1 struct {
	Match           *matchtypes.Match `json:"match"`
	RescoredMatches int               `json:"rescored_matches"`
}

// MatchCanceledPayloadV1 announces a cancellation.
type MatchCanceledPayloadV1 struct {
	Match           *matchtypes.Match `json:"match"`
	RescoredMatches int               `json:"rescored_matches"`
}

// MatchRescoredPayloadV1 announces a completed rescore.
type MatchRescoredPayloadV1 struct {
	RankingID       sharedtypes.RankingID `json:"ranking_id"`
	RescoredMatches int                   `json:"rescored_matches"`
	PlayersUpdated  int                   `json:"players_updated"`
}

// MatchFailedPayloadV1 reports a domain failure for any match operation.
type MatchFailedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	MatchID sharedtypes.MatchID `json:"match_id,omitempty"`
	Reason  string              `json:"reason"`
}
