package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrStore         = errors.New("store failure")
)
