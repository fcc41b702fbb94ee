package storage

import "errors"

// Sentinel errors shared by every store implementation. Callers match
// them with errors.Is; drivers wrap their native failures into these.
var (
	// ErrNotFound reports a lookup that matched no record.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey reports an insert whose key already exists. All
	// stores are append-only, so a second write with the same key is
	// rejected rather than treated as an update.
	ErrDuplicateKey = errors.New("duplicate key: append-only store does not allow updates")

	// ErrInvalidInput reports a record rejected before it reached the
	// backing store (nil entries, empty keys, malformed values).
	ErrInvalidInput = errors.New("invalid input")
)
