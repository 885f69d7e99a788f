package matchqueue

import (
	"time"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// RescoreJob asks the worker to replay a ranking's finished-match history.
// Jobs are unique by args, so repeated requests for the same window collapse
// into one queued job.
type RescoreJob struct {
	GuildID        sharedtypes.GuildID   `json:"guild_id"`
	RankingID      sharedtypes.RankingID `json:"ranking_id"`
	Since          time.Time             `json:"since,omitempty"`
	ResetToInitial bool                  `json:"reset_to_initial,omitempty"`
}

// Kind returns the job type identifier for River.
func (RescoreJob) Kind() string { return "match_rescore" }
