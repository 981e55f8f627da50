package model

import "errors"

var (
	// ErrNotFound reports an absent record id. Remove and counter
	// operations treat it as a no-op rather than a failure.
	ErrNotFound = errors.New("not found")

	// ErrCorruptCollection reports stored text that fails to parse.
	// Repositories degrade it to an empty collection; it never reaches
	// callers of the store.
	ErrCorruptCollection = errors.New("corrupt collection")

	// ErrPersistenceUnavailable reports a write rejected by the medium
	// (quota, disabled storage). Retryable; unsaved data stays with the
	// caller.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
