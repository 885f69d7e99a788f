package matchdb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// PriorStats summarizes one player's finished-match history before a cutoff.
type PriorStats struct {
	LastPlayed time.Time
	Matches    int
}

// Repository defines match persistence. The db argument accepts either the
// shared *bun.DB or an open transaction; rescores always run inside one.
type Repository interface {
	CreateMatch(ctx context.Context, db bun.IDB, match *matchtypes.Match) error
	GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*matchtypes.Match, error)
	UpdateMatch(ctx context.Context, db bun.IDB, match *matchtypes.Match) error

	// ListFinishedSince returns finished matches of the ranking whose
	// time_finished is at or after since, ordered by (time_finished, id)
	// ascending. This ordering is the replay order of the rescorer and must
	// be total and stable.
	ListFinishedSince(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, since time.Time) ([]*matchtypes.Match, error)

	// ListOngoing returns the ranking's ongoing matches, oldest first.
	ListOngoing(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID) ([]*matchtypes.Match, error)

	// UpdateTeamSnapshots rewrites only the stored team jsonb (the per-player
	// rating snapshots and inactivity markers) of a match during a rescore.
	UpdateTeamSnapshots(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, teams []matchtypes.Team) error

	// PlayerStatsBefore returns, per player in the ranking, the latest
	// time_finished of a finished match strictly before the cutoff plus how
	// many finished matches they played before it. Players with no such match
	// are absent. The rescorer seeds its inactivity clock and match counts
	// from this.
	PlayerStatsBefore(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, before time.Time) (map[sharedtypes.DiscordID]PriorStats, error)

	// CountFinished returns how many finished matches the ranking has.
	CountFinished(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID) (int, error)
}
