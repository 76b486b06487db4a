package domain

import (
	"errors"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrMalformedID means an input identifier could not be coerced to a UUID
	// even after padding. Ingestion aborts rather than inventing data.
	ErrMalformedID = errors.New("malformed identifier")

	// ErrUnknownEnum means the processed document carried a category label the
	// schema cannot represent. Silently dropping it would produce a card
	// missing data without any signal, so ingestion fails fast.
	ErrUnknownEnum = errors.New("unknown enum label")
)
