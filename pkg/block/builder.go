package block

import (
	"github.com/nisaacdz/blockify/pkg/digest"
	"github.com/nisaacdz/blockify/pkg/record"
)

// UnchainedInstance accumulates signed records before they are sealed
// into a Block by a Chain's Append. It is not safe for concurrent use;
// a single goroutine builds a block, then hands it to Append.
type UnchainedInstance[T record.Payload[T]] struct {
	records  []record.SignedRecord[T]
	metadata *record.Metadata
	nonce    uint64

	rootValid bool
	root      digest.Digest
}

// NewBuilder returns an UnchainedInstance ready to accept records. A
// nil metadata is treated as empty.
func NewBuilder[T record.Payload[T]](metadata *record.Metadata, nonce uint64) *UnchainedInstance[T] {
	if metadata == nil {
		metadata = record.NewMetadata()
	}
	return &UnchainedInstance[T]{metadata: metadata, nonce: nonce}
}

// Push appends rec to the builder and invalidates the cached merkle
// root, so the next call to MerkleRoot recomputes it.
func (u *UnchainedInstance[T]) Push(rec record.SignedRecord[T]) {
	u.records = append(u.records, rec)
	u.rootValid = false
}

// Records returns the records pushed so far, in push order.
func (u *UnchainedInstance[T]) Records() []record.SignedRecord[T] {
	out := make([]record.SignedRecord[T], len(u.records))
	copy(out, u.records)
	return out
}

// Metadata returns the builder's block-level metadata.
func (u *UnchainedInstance[T]) Metadata() *record.Metadata {
	return u.metadata.Clone()
}

// Nonce returns the builder's nonce.
func (u *UnchainedInstance[T]) Nonce() uint64 {
	return u.nonce
}

// MerkleRoot returns the merkle root of the pushed records' hashes,
// computed once and cached until the next Push.
func (u *UnchainedInstance[T]) MerkleRoot() digest.Digest {
	if u.rootValid {
		return u.root
	}
	hashes := make([]digest.Digest, len(u.records))
	for i, r := range u.records {
		hashes[i] = r.Hash()
	}
	u.root = ComputeRoot(hashes)
	u.rootValid = true
	return u.root
}
