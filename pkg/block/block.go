package block

import (
	"fmt"

	"github.com/nisaacdz/blockify/pkg/codec"
	"github.com/nisaacdz/blockify/pkg/digest"
	"github.com/nisaacdz/blockify/pkg/record"
)

// ChainedInstance is the lightweight descriptor a Chain hands back from
// Append and threads into the next block's Seal call: just enough to
// link the next block to this one without holding the full sealed
// Block (and its records) in memory.
type ChainedInstance struct {
	Position   uint64
	Hash       digest.Digest
	MerkleRoot digest.Digest
	PrevHash   digest.Digest
	Nonce      uint64
}

// Block is a sealed, immutable block: a position in the chain, a link
// to the previous block's hash, the merkle root of its records, a
// nonce, a creation timestamp, attached metadata, and the records
// themselves (kept encoded until Records() is called, so a caller that
// only wants the header never pays to decode the body).
type Block[T record.Payload[T]] struct {
	position   uint64
	prevHash   digest.Digest
	merkleRoot digest.Digest
	nonce      uint64
	timestamp  int64
	metadata   *record.Metadata
	hash       digest.Digest

	recordBytes [][]byte
	codec       record.Codec[T]
}

// Seal builds a Block from an UnchainedInstance, the previous block's
// descriptor (nil for the genesis block), a timestamp (unix seconds)
// and a codec used to encode the records for storage. This is the
// single place block hashes are computed, so every Chain backend that
// calls it produces byte-identical headers for the same inputs.
func Seal[T record.Payload[T]](u *UnchainedInstance[T], prev *ChainedInstance, timestamp int64, codecT record.Codec[T]) (Block[T], ChainedInstance, error) {
	var position uint64
	prevHash := digest.Zero
	if prev != nil {
		position = prev.Position + 1
		prevHash = prev.Hash
	}

	root := u.MerkleRoot()
	recs := u.Records()

	recordBytes := make([][]byte, len(recs))
	for i, r := range recs {
		w := codec.NewWriter()
		if err := r.Encode(w, codecT); err != nil {
			return Block[T]{}, ChainedInstance{}, fmt.Errorf("%w: %v", ErrRecords, err)
		}
		recordBytes[i] = w.Bytes()
	}

	h := computeBlockHash(position, prevHash, root, u.Nonce(), timestamp, u.metadata)

	b := Block[T]{
		position:    position,
		prevHash:    prevHash,
		merkleRoot:  root,
		nonce:       u.Nonce(),
		timestamp:   timestamp,
		metadata:    u.metadata.Clone(),
		hash:        h,
		recordBytes: recordBytes,
		codec:       codecT,
	}
	descriptor := ChainedInstance{
		Position:   position,
		Hash:       h,
		MerkleRoot: root,
		PrevHash:   prevHash,
		Nonce:      u.Nonce(),
	}
	return b, descriptor, nil
}

// computeBlockHash is H(position || prev_hash || merkle_root || nonce
// || timestamp || metadata), fixed-width and length-prefixed per
// pkg/codec so the result never depends on field iteration order.
func computeBlockHash(position uint64, prevHash, merkleRoot digest.Digest, nonce uint64, timestamp int64, metadata *record.Metadata) digest.Digest {
	w := codec.NewWriter()
	w.PutUint64(position)
	w.PutBytes(prevHash.Bytes())
	w.PutBytes(merkleRoot.Bytes())
	w.PutUint64(nonce)
	w.PutInt64(timestamp)
	metadata.Encode(w)
	return digest.Sum(w.Bytes())
}

// Position returns the block's position in its chain (genesis = 0).
func (b Block[T]) Position() uint64 { return b.position }

// Hash returns the block's own hash.
func (b Block[T]) Hash() digest.Digest { return b.hash }

// PrevHash returns the previous block's hash (Zero for genesis).
func (b Block[T]) PrevHash() digest.Digest { return b.prevHash }

// MerkleRoot returns the merkle root of the block's records.
func (b Block[T]) MerkleRoot() digest.Digest { return b.merkleRoot }

// Nonce returns the block's nonce.
func (b Block[T]) Nonce() uint64 { return b.nonce }

// Timestamp returns the block's creation time, unix seconds.
func (b Block[T]) Timestamp() int64 { return b.timestamp }

// Metadata returns a clone of the block's metadata.
func (b Block[T]) Metadata() *record.Metadata { return b.metadata.Clone() }

// Descriptor returns the ChainedInstance a caller would thread into the
// next Seal call.
func (b Block[T]) Descriptor() ChainedInstance {
	return ChainedInstance{
		Position:   b.position,
		Hash:       b.hash,
		MerkleRoot: b.merkleRoot,
		PrevHash:   b.prevHash,
		Nonce:      b.nonce,
	}
}

// Records decodes and returns the block's signed records, in their
// original order. A stored record that fails to decode returns
// ErrRecords wrapped with the failing index.
func (b Block[T]) Records() ([]record.SignedRecord[T], error) {
	out := make([]record.SignedRecord[T], len(b.recordBytes))
	for i, raw := range b.recordBytes {
		r, err := record.Decode[T](codec.NewReader(raw), b.codec)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrRecords, i, err)
		}
		out[i] = r
	}
	return out, nil
}

// RecordCount returns the number of records without decoding them.
func (b Block[T]) RecordCount() int {
	return len(b.recordBytes)
}

// Validate checks the block against descriptor, the ChainedInstance a
// Chain returned for it (from Append, or from a later BlockAt's own
// Descriptor()): b's position, prev-hash, merkle root, nonce and hash
// must all equal descriptor's corresponding fields, and the merkle root
// and hash must further match what recomputing them from the block's
// own records and header fields yields. This is a self-check — it
// proves the block in hand is the exact, untampered block descriptor
// describes — not a check against some other (e.g. predecessor) block.
// Cross-block linkage (this block's PrevHash against the actual
// previous block's Hash) is chain.Scan's job, since only a chain walk
// has the previous block to compare against. It returns ErrBlock,
// wrapped with which check failed, on any mismatch.
func (b Block[T]) Validate(descriptor *ChainedInstance) error {
	if descriptor == nil {
		return fmt.Errorf("%w: descriptor is required", ErrBlock)
	}
	if b.position != descriptor.Position {
		return fmt.Errorf("%w: position %d, want %d", ErrBlock, b.position, descriptor.Position)
	}
	if b.prevHash != descriptor.PrevHash {
		return fmt.Errorf("%w: prev hash %s, want %s", ErrBlock, b.prevHash, descriptor.PrevHash)
	}
	if b.nonce != descriptor.Nonce {
		return fmt.Errorf("%w: nonce %d, want %d", ErrBlock, b.nonce, descriptor.Nonce)
	}
	if b.merkleRoot != descriptor.MerkleRoot {
		return fmt.Errorf("%w: merkle root %s, want %s", ErrBlock, b.merkleRoot, descriptor.MerkleRoot)
	}
	if b.hash != descriptor.Hash {
		return fmt.Errorf("%w: hash %s, want %s", ErrBlock, b.hash, descriptor.Hash)
	}

	recs, err := b.Records()
	if err != nil {
		return err
	}
	hashes := make([]digest.Digest, len(recs))
	for i, r := range recs {
		// VerifyIntegrity recomputes each record's hash from its current
		// payload and metadata: a storage backend whose payload column
		// is tampered with independently of its hash column is caught
		// here, even though the merkle root below would otherwise still
		// match the stale, untouched hash field.
		if err := r.VerifyIntegrity(); err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrBlock, i, err)
		}
		hashes[i] = r.Hash()
	}
	wantRoot := ComputeRoot(hashes)
	if b.merkleRoot != wantRoot {
		return fmt.Errorf("%w: merkle root %s, want %s", ErrBlock, b.merkleRoot, wantRoot)
	}

	wantHash := computeBlockHash(b.position, b.prevHash, b.merkleRoot, b.nonce, b.timestamp, b.metadata)
	if b.hash != wantHash {
		return fmt.Errorf("%w: hash %s, want %s", ErrBlock, b.hash, wantHash)
	}
	return nil
}
