// Package blockify is the core of a blockchain-building library:
// record hashing/signing/verification, block assembly with a Merkle
// root and hash-linked headers, and a storage-agnostic chain contract
// with in-memory and persistent backends. It defines no payload types,
// no network protocol, and no consensus — those are left to callers.
//
// The most common surface is re-exported at this root so that
// `import "github.com/nisaacdz/blockify"` covers keys, records, blocks
// and an in-memory chain; pull in pkg/chain/sqlite separately only when
// durability across restarts is needed.
package blockify

import (
	"context"

	"github.com/nisaacdz/blockify/pkg/block"
	"github.com/nisaacdz/blockify/pkg/blockcrypto"
	"github.com/nisaacdz/blockify/pkg/chain"
	"github.com/nisaacdz/blockify/pkg/digest"
	"github.com/nisaacdz/blockify/pkg/record"
)

// Crypto layer.
type (
	KeyPair   = blockcrypto.KeyPair
	PublicKey = blockcrypto.PublicKey
	Signature = blockcrypto.Signature
)

var (
	GenerateKeyPair    = blockcrypto.GenerateKeyPair
	KeyPairFromSeed    = blockcrypto.KeyPairFromSeed
	KeyPairFromPrivate = blockcrypto.KeyPairFromPrivateHex
	Hash               = blockcrypto.Hash
	Sign               = blockcrypto.Sign
	Verify             = blockcrypto.Verify
)

// Digest.
type Digest = digest.Digest

var ZeroDigest = digest.Zero

// Record layer.
type (
	Payload[T any]                     = record.Payload[T]
	Codec[T any]                       = record.Codec[T]
	SignedRecord[T record.Payload[T]] = record.SignedRecord[T]
	Metadata                          = record.Metadata
)

var NewMetadata = record.NewMetadata

// NewRecord builds a signed record from a payload, a signing key pair
// and metadata. It is a thin generic wrapper over pkg/record.New,
// re-exported here because a generic function can't be aliased as a
// plain package-level variable.
func NewRecord[T record.Payload[T]](payload T, keypair blockcrypto.KeyPair, metadata *record.Metadata) (record.SignedRecord[T], error) {
	return record.New(payload, keypair, metadata)
}

// Block layer.
type (
	UnchainedInstance[T record.Payload[T]] = block.UnchainedInstance[T]
	Block[T record.Payload[T]]             = block.Block[T]
	ChainedInstance                        = block.ChainedInstance
)

var ComputeRoot = block.ComputeRoot

// NewBuilder returns an UnchainedInstance ready to accept records.
func NewBuilder[T record.Payload[T]](metadata *record.Metadata, nonce uint64) *block.UnchainedInstance[T] {
	return block.NewBuilder[T](metadata, nonce)
}

// Seal builds a sealed Block from an UnchainedInstance.
func Seal[T record.Payload[T]](u *block.UnchainedInstance[T], prev *block.ChainedInstance, timestamp int64, codecT record.Codec[T]) (block.Block[T], block.ChainedInstance, error) {
	return block.Seal(u, prev, timestamp, codecT)
}

// Chain layer. Use chain/sqlite for the persistent backend.
type Chain[T record.Payload[T]] = chain.Chain[T]

// NewMemoryChain returns an empty in-memory Chain.
func NewMemoryChain[T record.Payload[T]](codecT record.Codec[T], opts ...chain.Option[T]) *chain.Memory[T] {
	return chain.NewMemory[T](codecT, opts...)
}

// ScanChain walks every block on c, validating header linkage end to
// end.
func ScanChain[T record.Payload[T]](ctx context.Context, c chain.Chain[T]) error {
	return chain.Scan[T](ctx, c)
}
