// Package matchtypes defines the match shapes shared by the match module,
// the rescorer, and the leaderboard.
package matchtypes

import (
	"time"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchStatusOngoing  MatchStatus = "ONGOING"
	MatchStatusFinished MatchStatus = "FINISHED"
	MatchStatusCanceled MatchStatus = "CANCELED"
)

// PlayerFlags mark per-player facts recorded on a match.
type PlayerFlags uint8

const (
	// FlagFirstMatch marks the player's first match in the ranking; no
	// inactivity decay applies.
	FlagFirstMatch PlayerFlags = 1 << iota
)

// Has reports whether all bits in mask are set.
func (f PlayerFlags) Has(mask PlayerFlags) bool { return f&mask == mask }

// MatchPlayer is one player's slot on a team, carrying the rating snapshot
// the player held going into the match. Snapshots are immutable once written
// except during a rescore, which overwrites them.
type MatchPlayer struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
	// Rating is the pre-match rating snapshot, kept for audit/history
	// independent of the player's current rating.
	Rating rating.Rating `json:"rating"`
	// TimeSinceLastMatch is the elapsed seconds since the player's previous
	// finished match; nil for their first match.
	TimeSinceLastMatch *int64      `json:"time_since_last_match,omitempty"`
	Flags              PlayerFlags `json:"flags,omitempty"`
}

// Team is an ordered list of players on one side of a match.
type Team struct {
	Players []MatchPlayer `json:"players"`
}

// Match is one played (or in-progress, or canceled) match in a ranking.
type Match struct {
	ID        sharedtypes.MatchID
	GuildID   sharedtypes.GuildID
	RankingID sharedtypes.RankingID
	Status    MatchStatus

	TimeStarted time.Time
	// TimeFinished is set once the match has an outcome; nil while ongoing.
	TimeFinished *time.Time

	// Outcome holds one relative score per team, aligned with Teams. A team
	// with a higher score beat every team with a lower one; equal scores are
	// draws. Nil while the match is ongoing.
	Outcome []int
	Teams   []Team

	CreatedBy sharedtypes.DiscordID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerIDs returns every player id across all teams, in team order.
func (m *Match) PlayerIDs() []sharedtypes.DiscordID {
	var ids []sharedtypes.DiscordID
	for _, team := range m.Teams {
		for _, p := range team.Players {
			ids = append(ids, p.UserID)
		}
	}
	return ids
}

// Player returns a pointer to the slot for the given player, or nil.
func (m *Match) Player(userID sharedtypes.DiscordID) *MatchPlayer {
	for ti := range m.Teams {
		for pi := range m.Teams[ti].Players {
			if m.Teams[ti].Players[pi].UserID == userID {
				return &m.Teams[ti].Players[pi]
			}
		}
	}
	return nil
}
