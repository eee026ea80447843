package storage

import "errors"

// ErrDocumentNotFound is returned when a patch targets a document the remote store does not hold.
var ErrDocumentNotFound = errors.New("document not found")

// ErrUnknownCollection is returned for a collection the remote store has no table for.
var ErrUnknownCollection = errors.New("unknown collection")

// ErrInvalidPath is returned when a document path cannot be parsed.
var ErrInvalidPath = errors.New("invalid document path")
