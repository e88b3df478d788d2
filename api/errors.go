package api

import "errors"

// Errors returned to API callers
var (
	ErrInvalidBody       = errors.New("invalid request body")
	ErrDashboardNotFound = errors.New("dashboard not found")
	ErrUnknownDimension  = errors.New("unknown dimension")
	ErrMissingMeasure    = errors.New("measure is required")
)
