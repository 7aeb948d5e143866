package models

import "errors"

// Domain specific errors surfaced across the suggestion pipeline.
var (
	ErrNotFound            = errors.New("requested item not found")
	ErrConflict            = errors.New("item already exists or conflict")
	ErrMissingCoordinates  = errors.New("latitude and longitude are required")
	ErrUpstream            = errors.New("upstream provider call failed")
	ErrMalformedSuggestion = errors.New("invalid suggestion format from AI")
)
