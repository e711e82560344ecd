package services

import "errors"

var (
	// ErrNotFound covers entities that are absent or owned by another user.
	// Handlers surface both as the same 404 so the API never confirms the
	// existence of rows the caller cannot see. It also covers re-purchasing
	// an already-purchased item.
	ErrNotFound = errors.New("not found")

	// ErrNothingToGenerate signals a generator that ran successfully but
	// found no shortfalls. Callers report a zero-count success, not an error.
	ErrNothingToGenerate = errors.New("nothing to generate")
)
