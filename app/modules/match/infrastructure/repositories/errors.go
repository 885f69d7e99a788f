package matchdb

import "errors"

var (
	// ErrMatchNotFound indicates no match exists with the given id.
	ErrMatchNotFound = errors.New("match not found")

	// ErrNoRowsAffected indicates an update matched no rows, usually a
	// concurrent delete or a stale id.
	ErrNoRowsAffected = errors.New("no rows affected")
)
