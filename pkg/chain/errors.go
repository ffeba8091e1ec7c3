package chain

import "errors"

// Sentinel errors for the chain layer, checked with errors.Is.
var (
	// ErrNotFound is returned by BlockAt when no block exists at the
	// requested position.
	ErrNotFound = errors.New("chain: not found")

	// ErrStorageError wraps failures from the underlying storage medium
	// (disk I/O, the embedded SQL store, and similar).
	ErrStorageError = errors.New("chain: storage error")

	// ErrInvalidRecord is returned when a builder's record fails
	// signature verification, or fails to encode, during Append.
	ErrInvalidRecord = errors.New("chain: invalid record")

	// ErrConcurrentAppend is returned when Append is called while
	// another Append on the same Chain is already in flight. The core
	// contract leaves concurrent multi-writer access out of scope;
	// rather than allow undefined interleaving, the in-memory and
	// sqlite backends both fail fast instead.
	ErrConcurrentAppend = errors.New("chain: concurrent append in progress")
)
