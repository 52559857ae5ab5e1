package app

import "errors"

var (
	// ErrInvalidInput covers malformed request payloads.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexNotReady means no ingestion has ever completed.
	ErrIndexNotReady = errors.New("review index not loaded")

	// ErrEmptyResult means the index loaded fine but holds no documents,
	// so a similarity search cannot match anything.
	ErrEmptyResult = errors.New("review index has no documents")

	// ErrInvalidTeacherID means the supplied teacher id was not numeric.
	ErrInvalidTeacherID = errors.New("teacher id must be a number")

	// ErrTeacherNotFound means zero reviews matched the teacher id.
	ErrTeacherNotFound = errors.New("no reviews found for teacher")

	// ErrUpstreamUnavailable wraps record-store or embedder failures so
	// callers can tell them apart from empty results.
	ErrUpstreamUnavailable = errors.New("upstream dependency unavailable")
)
