package playerservice

import "errors"

var (
	ErrUserIDRequired = errors.New("user id is required")
)
