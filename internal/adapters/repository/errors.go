package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotConfigured = errors.New("storage is not configured")
	ErrStorePath     = errors.New("storage path is required")
	ErrClosed        = errors.New("storage is closed")
)
