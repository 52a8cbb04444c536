package models

import "errors"

// Engine error taxonomy. Engines return these (or wrap them with %w); the
// HTTP adapter maps each kind to a status code in one place and nothing else
// inspects error text.
var (
	// ErrNotFound covers missing and soft-deleted entities alike.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied means the actor is neither the author nor staff.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidArgument covers malformed input such as a self-follow.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict is reserved for uniqueness violations the idempotent
	// upsert protocol does not absorb. It should not surface in normal
	// operation.
	ErrConflict = errors.New("conflict")
)
