package rankingservice

import "errors"

var (
	ErrNameRequired    = errors.New("ranking name is required")
	ErrInvalidStrategy = errors.New("unknown rating strategy")
	ErrInvalidConfig   = errors.New("invalid ranking configuration")
)
