// Package chain defines the append/retrieve contract shared by every
// chain backend, and provides the in-memory implementation. The
// persistent, embedded-relational-store backend lives in the sibling
// package pkg/chain/sqlite so that callers who don't need durability
// never pull in a SQL driver.
package chain

import (
	"context"
	"fmt"

	"github.com/nisaacdz/blockify/pkg/block"
	"github.com/nisaacdz/blockify/pkg/record"
)

// Chain is the abstract contract every backend satisfies: append a
// built block, fetch a block by position, and report the current
// length. Every method takes a context so a backend with real I/O
// (pkg/chain/sqlite) can honor cancellation and deadlines; the
// in-memory backend accepts ctx for interface symmetry and never
// blocks on it.
type Chain[T record.Payload[T]] interface {
	// Append seals u onto the chain and returns the resulting block's
	// ChainedInstance descriptor.
	Append(ctx context.Context, u *block.UnchainedInstance[T]) (block.ChainedInstance, error)

	// BlockAt returns the block at position, or ErrNotFound.
	BlockAt(ctx context.Context, position uint64) (*block.Block[T], error)

	// Len returns the number of blocks currently on the chain.
	Len(ctx context.Context) (uint64, error)

	// Close releases any resources the backend holds. The in-memory
	// backend's Close is a no-op; the sqlite backend closes its
	// database handle.
	Close() error
}

// VerifyRecords checks every record's signature before a backend seals
// them into a block. It stops at and returns the first failure, wrapped
// with the offending index, so Append can reject the whole builder with
// no state mutated rather than sealing a block that carries a forged or
// mismatched signature.
func VerifyRecords[T record.Payload[T]](records []record.SignedRecord[T]) error {
	for i, r := range records {
		if err := r.Verify(); err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrInvalidRecord, i, err)
		}
	}
	return nil
}
