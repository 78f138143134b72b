package index

import "errors"

// Errors returned by index operations.
var (
	// ErrWrongGoroutine indicates a call from a goroutine other than the
	// one that attached the index.
	ErrWrongGoroutine = errors.New("index called outside owning goroutine")

	// ErrDetached indicates the index has been detached from its engine.
	ErrDetached = errors.New("index is detached")

	// ErrEditInProgress indicates a query arrived between the two phases
	// of an edit notification, while the table is mid-patch.
	ErrEditInProgress = errors.New("query during edit delivery")
)
