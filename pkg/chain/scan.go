package chain

import (
	"context"
	"fmt"

	"github.com/nisaacdz/blockify/pkg/block"
	"github.com/nisaacdz/blockify/pkg/digest"
	"github.com/nisaacdz/blockify/pkg/record"
)

// Scan walks a chain from position 0 to Len()-1. At each position it
// self-validates the block against its own descriptor (merkle root and
// hash recomputed from the block's current contents), then — since
// Block.Validate only ever checks a block against itself — separately
// compares this block's PrevHash against the actual previous block's
// Hash to confirm the chain hasn't been spliced or reordered. It stops
// at and returns the first failure, wrapped with the offending
// position.
func Scan[T record.Payload[T]](ctx context.Context, c Chain[T]) error {
	length, err := c.Len(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageError, err)
	}

	wantPrevHash := digest.Zero
	for position := uint64(0); position < length; position++ {
		b, err := c.BlockAt(ctx, position)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStorageError, err)
		}
		d := b.Descriptor()
		if err := b.Validate(&d); err != nil {
			return fmt.Errorf("block at position %d: %w", position, err)
		}
		if d.PrevHash != wantPrevHash {
			return fmt.Errorf("block at position %d: %w: prev hash %s, want %s", position, block.ErrBlock, d.PrevHash, wantPrevHash)
		}
		wantPrevHash = d.Hash
	}
	return nil
}
