// Package repository defines error types that are reused across the store
// backends. These sentinel values allow higher layers such as the aggregator
// and the HTTP handlers to distinguish between failure scenarios without
// knowing which database sits underneath. Backends wrap driver errors and
// return these values unwrapped or wrapped with %w.
package repository

import "errors"

// ErrCourseNotFound is returned when no course matches a course number.
// Handlers translate it into an HTTP 404 response.
var ErrCourseNotFound = errors.New("course not found")

// ErrLecturerNotFound is returned when a section references a lecturer id
// that does not exist.
var ErrLecturerNotFound = errors.New("lecturer not found")

// ErrInvalidRating is returned by writers when a review rating falls
// outside the 1..5 range.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")
