package block

import "errors"

// Sentinel errors for the block layer, checked with errors.Is.
var (
	// ErrRecords is returned when Seal cannot encode a block's records,
	// or when Records cannot decode the stored ones.
	ErrRecords = errors.New("block: records error")

	// ErrBlock is returned by Validate when the descriptor is nil, when a
	// block's header fields (position, prev hash, nonce, merkle root, or
	// hash) don't check out against the chained descriptor it is
	// validated against or against their recomputed values, or when a
	// record fails its integrity check.
	ErrBlock = errors.New("block: invalid block")
)
