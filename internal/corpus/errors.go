// Package corpus owns the in-memory Quran data model: verses grouped into
// chapters, the canonical verse ordering, and the flattened word stream used
// by the multi-ayah matcher. The corpus is built once by the loader at
// startup and is read-only afterwards, so it may be shared across goroutines
// without locking.
//
// This file centralizes the sentinel errors returned by lookups so callers
// can branch with errors.Is instead of string matching. A missing verse is an
// expected condition, not a crash: every lookup returns an explicit error
// value rather than panicking.
package corpus

import "errors"

var (
	// ErrSurahNotFound indicates the requested surah number is not present
	// in the corpus.
	ErrSurahNotFound = errors.New("surah not found")

	// ErrVerseNotFound indicates the surah exists but has no verse with the
	// requested ayah number.
	ErrVerseNotFound = errors.New("verse not found")

	// ErrChapterMismatch is returned when a verse is added to a chapter whose
	// number differs from the verse's surah number. Not expected from the
	// loader, but guarded against.
	ErrChapterMismatch = errors.New("verse surah number does not match chapter")

	// ErrInvalidRange is returned by PartialRange when the start reference
	// sorts after the end reference in canonical order, or when either
	// endpoint does not exist.
	ErrInvalidRange = errors.New("invalid verse range")
)
