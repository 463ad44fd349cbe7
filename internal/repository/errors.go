package repository

import "errors"

// Sentinel errors surfaced by the in-memory stores. Services translate
// these into typed API errors.
var (
	ErrNotFound      = errors.New("repository: not found")
	ErrConflict      = errors.New("repository: venue slot conflict")
	ErrTerminal      = errors.New("repository: event status is terminal")
	ErrStageMismatch = errors.New("repository: event not in expected stage")
	ErrReportExists  = errors.New("repository: report already attached")
)
