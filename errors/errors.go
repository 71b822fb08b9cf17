// Package errors defines all exported error sentinels for the simhash library.
//
// This is the single source of truth for error values. Both the top-level
// simhash package and the corpus ingestion package import from here, ensuring
// errors.Is checks work across package boundaries.
package errors

import "errors"

// Configuration errors
var (
	ErrInvalidBlocks   = errors.New("simhash: number of blocks must be in [2, 64]")
	ErrInvalidDistance = errors.New("simhash: distance must be at least 1 and less than the number of blocks")
	ErrMalformedMasks  = errors.New("simhash: block masks must be contiguous, disjoint, and cover all 64 bits")
)

// Input errors
var (
	ErrNoFeatures = errors.New("simhash: cannot summarize an empty feature sequence")
)

// Ingestion errors
var (
	ErrUnknownFormat = errors.New("simhash: unknown input format")
	ErrUnknownHasher = errors.New("simhash: unknown feature hasher")
	ErrBadRecord     = errors.New("simhash: malformed input record")
)
