// Package common defines sentinel errors shared across evidencekeeper
// layers. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Upload flow errors.
	ErrUploadInProgress = errors.New("another upload is in progress")
	ErrNothingSelected  = errors.New("file and control must be selected")

	// Local cache errors.
	ErrCacheEmpty = errors.New("local cache is empty")
)
