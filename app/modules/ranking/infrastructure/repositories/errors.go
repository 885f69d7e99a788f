package rankingdb

import "errors"

var (
	// ErrNotFound indicates the ranking does not exist.
	ErrNotFound = errors.New("ranking not found")

	// ErrNoRowsAffected indicates an update matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
