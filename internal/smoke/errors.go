package smoke

import "errors"

// Sentinel kinds for smoke run failures.
var (
	ErrConfig       = errors.New("invalid smoke config")
	ErrUnhealthy    = errors.New("site unhealthy")
	ErrMissingEntry = errors.New("submission missing from listing")
	ErrPage         = errors.New("page check failed")
	ErrEcho         = errors.New("guestbook echo mismatch")
)
