package playerdb

import "errors"

var (
	// ErrPlayerNotFound indicates the player is not registered in the guild.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrRatingNotFound indicates the player has no rating row for the
	// ranking (not registered into it).
	ErrRatingNotFound = errors.New("player rating not found")
)
