// Package services defines the application layer over the verse corpus:
// lookups, the three search modes, and the cascading smart search. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

var (
	// ErrEmptyQuery is returned when a search request carries an empty or
	// whitespace-only query where one is required.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrQueryTooLong is returned when a query exceeds the configured
	// maximum length limit.
	ErrQueryTooLong = errors.New("query too long")

	// ErrInvalidFuzzyThreshold is returned when a fuzzy similarity
	// threshold lies outside [0,1].
	ErrInvalidFuzzyThreshold = errors.New("fuzzy threshold must be between 0 and 1")

	// ErrInvalidSlidingThreshold is returned when a sliding-window
	// similarity threshold lies outside [0,100].
	ErrInvalidSlidingThreshold = errors.New("sliding threshold must be between 0 and 100")

	// ErrInvalidLimit is returned when a result limit is negative.
	ErrInvalidLimit = errors.New("limit must not be negative")
)
