package matchservice

import "errors"

// Validation and state errors surfaced as domain failures, not infra errors.
var (
	ErrTooFewTeams           = errors.New("a match needs at least two teams")
	ErrEmptyTeam             = errors.New("every team needs at least one player")
	ErrDuplicatePlayer       = errors.New("a player may appear on only one team")
	ErrOutcomeLengthMismatch = errors.New("outcome must have one entry per team")
	ErrMatchNotOngoing       = errors.New("match is not ongoing")
	ErrMatchNotFinished      = errors.New("match is not finished")
	ErrFinishBeforeStart     = errors.New("match cannot finish before it started")
)
