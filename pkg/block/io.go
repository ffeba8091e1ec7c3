package block

import (
	"fmt"

	"github.com/nisaacdz/blockify/pkg/codec"
	"github.com/nisaacdz/blockify/pkg/digest"
	"github.com/nisaacdz/blockify/pkg/record"
)

// EncodeHeader writes the block's header fields (everything except the
// record bodies) into w. Chain backends that store records in a
// separate table (see pkg/chain/sqlite) persist the header and the
// records independently, then reassemble with FromParts on read.
func (b Block[T]) EncodeHeader(w *codec.Writer) {
	w.PutUint64(b.position)
	w.PutBytes(b.prevHash.Bytes())
	w.PutBytes(b.merkleRoot.Bytes())
	w.PutUint64(b.nonce)
	w.PutInt64(b.timestamp)
	w.PutBytes(b.hash.Bytes())
	b.metadata.Encode(w)
}

// DecodeHeader reads back the fields written by EncodeHeader.
func DecodeHeader(r *codec.Reader) (position uint64, prevHash, merkleRoot digest.Digest, nonce uint64, timestamp int64, hash digest.Digest, metadata *record.Metadata, err error) {
	position, err = r.Uint64()
	if err != nil {
		return
	}
	var b []byte
	if b, err = r.Bytes(); err != nil {
		return
	}
	if prevHash, err = digest.FromBytes(b); err != nil {
		return
	}
	if b, err = r.Bytes(); err != nil {
		return
	}
	if merkleRoot, err = digest.FromBytes(b); err != nil {
		return
	}
	if nonce, err = r.Uint64(); err != nil {
		return
	}
	if timestamp, err = r.Int64(); err != nil {
		return
	}
	if b, err = r.Bytes(); err != nil {
		return
	}
	if hash, err = digest.FromBytes(b); err != nil {
		return
	}
	metadata, err = record.DecodeMetadata(r)
	return
}

// FromParts reassembles a Block from a decoded header and the raw
// encoded record bytes a storage backend persisted alongside it. It
// does not re-validate the header against the records; callers that
// need that guarantee call Validate afterward.
func FromParts[T record.Payload[T]](position uint64, prevHash, merkleRoot digest.Digest, nonce uint64, timestamp int64, hash digest.Digest, metadata *record.Metadata, recordBytes [][]byte, codecT record.Codec[T]) Block[T] {
	return Block[T]{
		position:    position,
		prevHash:    prevHash,
		merkleRoot:  merkleRoot,
		nonce:       nonce,
		timestamp:   timestamp,
		metadata:    metadata,
		hash:        hash,
		recordBytes: recordBytes,
		codec:       codecT,
	}
}

// EncodeRecord encodes a single pushed record's bytes for storage,
// using the same wire form Block.Records() decodes. Exposed so a
// storage backend can persist each record as its own row without
// importing pkg/codec directly.
func EncodeRecord[T record.Payload[T]](r record.SignedRecord[T], codecT record.Codec[T]) ([]byte, error) {
	w := codec.NewWriter()
	if err := r.Encode(w, codecT); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecords, err)
	}
	return w.Bytes(), nil
}
