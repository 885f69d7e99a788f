package playerdb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// Repository defines player and rating persistence. The db argument accepts
// either the shared *bun.DB or an open transaction.
//
// Error semantics:
//   - ErrPlayerNotFound / ErrRatingNotFound: record absent
//   - other errors: infrastructure failures
type Repository interface {
	CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error
	GetPlayer(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) (*Player, error)
	ListPlayers(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]*Player, error)

	// EnsureRating inserts a rating row at initial values if the player has
	// none for the ranking. Existing rows are left untouched.
	EnsureRating(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, userID sharedtypes.DiscordID, initial rating.Rating) error

	GetRating(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, userID sharedtypes.DiscordID) (rating.Rating, error)

	// GetRatings returns current ratings for the given players. Players with
	// no rating row are simply absent from the result.
	GetRatings(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, userIDs []sharedtypes.DiscordID) (map[sharedtypes.DiscordID]rating.Rating, error)

	// UpdateRatings writes post-rescore ratings, match counts and last-match
	// times in one pass, upserting rows for players seen for the first time.
	UpdateRatings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, ratings map[sharedtypes.DiscordID]rating.Rating, matchesPlayed map[sharedtypes.DiscordID]int, lastPlayed map[sharedtypes.DiscordID]time.Time) error
}
