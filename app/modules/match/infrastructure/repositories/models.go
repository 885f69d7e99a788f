package matchdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// Match is the persisted form of a match. Teams and Outcome are stored as
// jsonb so the team shape can evolve without schema churn.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID        sharedtypes.MatchID     `bun:"id,pk,type:uuid"`
	GuildID   sharedtypes.GuildID     `bun:"guild_id,notnull"`
	RankingID sharedtypes.RankingID   `bun:"ranking_id,notnull,type:uuid"`
	Status    matchtypes.MatchStatus  `bun:"status,notnull"`

	TimeStarted  time.Time  `bun:"time_started,notnull"`
	TimeFinished *time.Time `bun:"time_finished,nullzero"`

	Outcome []int             `bun:"outcome,type:jsonb,nullzero"`
	Teams   []matchtypes.Team `bun:"teams,type:jsonb,notnull"`

	CreatedBy sharedtypes.DiscordID `bun:"created_by,notnull"`
	CreatedAt time.Time             `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time             `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (m *Match) toDomain() *matchtypes.Match {
	return &matchtypes.Match{
		ID:           m.ID,
		GuildID:      m.GuildID,
		RankingID:    m.RankingID,
		Status:       m.Status,
		TimeStarted:  m.TimeStarted,
		TimeFinished: m.TimeFinished,
		Outcome:      m.Outcome,
		Teams:        m.Teams,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomain(m *matchtypes.Match) *Match {
	return &Match{
		ID:           m.ID,
		GuildID:      m.GuildID,
		RankingID:    m.RankingID,
		Status:       m.Status,
		TimeStarted:  m.TimeStarted,
		TimeFinished: m.TimeFinished,
		Outcome:      m.Outcome,
		Teams:        m.Teams,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
