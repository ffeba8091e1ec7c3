// Package record implements hashing, signing and verification of typed
// payloads, and the SignedRecord[T] envelope that pairs a payload with
// the signature and metadata attesting to it.
package record

import (
	"errors"
	"fmt"

	"github.com/nisaacdz/blockify/pkg/blockcrypto"
	"github.com/nisaacdz/blockify/pkg/codec"
	"github.com/nisaacdz/blockify/pkg/digest"
)

// Payload is the constraint a type must satisfy to be carried inside a
// SignedRecord: it can serialize itself, compare itself against another
// instance for equality, and clone itself. Marshal alone would be
// enough to hash and sign a payload; Clone lets a SignedRecord keep its
// own copy of the payload and hand out copies callers can't mutate
// behind its back. Equal is part of the contract for callers; pkg/block
// and pkg/chain do not call it.
type Payload[T any] interface {
	Marshal() ([]byte, error)
	Equal(T) bool
	Clone() T
}

// Codec is the decode half a Payload can't provide on its own: Go
// generics have no way to call a "static" constructor on a bare type
// parameter, so unmarshaling a T needs an explicit value that knows how
// to build one. A Codec[T] is normally the thing cmd/blockify-gen emits
// alongside a payload type (see pkg/genrecord), but any hand-written
// implementation works just as well.
type Codec[T any] interface {
	Marshal(T) ([]byte, error)
	Unmarshal([]byte) (T, error)
}

// Hash computes H(serialize(payload)) — the payload-only digest used
// for content addressing independent of who signed it or when.
func Hash[T Payload[T]](payload T) (digest.Digest, error) {
	data, err := payload.Marshal()
	if err != nil {
		return digest.Digest{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return digest.Sum(data), nil
}

// Sign signs the payload-only hash of payload with keypair's private
// key.
func Sign[T Payload[T]](payload T, keypair blockcrypto.KeyPair) (blockcrypto.Signature, error) {
	h, err := Hash(payload)
	if err != nil {
		return nil, err
	}
	return blockcrypto.Sign(keypair, h)
}

// Verify checks sig against the payload-only hash of payload and pub.
func Verify[T Payload[T]](payload T, sig blockcrypto.Signature, pub blockcrypto.PublicKey) error {
	h, err := Hash(payload)
	if err != nil {
		return err
	}
	if err := blockcrypto.Verify(pub, h, sig); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}

// SignedRecord pairs a payload with the signature and metadata attached
// when it was recorded. Its Hash is computed over payload||metadata,
// deliberately distinct from the payload-only Hash function above, so
// that two records carrying the identical payload but different
// metadata (e.g. different trace IDs) are never mistaken for the same
// record by anything that addresses records by hash.
type SignedRecord[T Payload[T]] struct {
	payload   T
	hash      digest.Digest
	publicKey blockcrypto.PublicKey
	signature blockcrypto.Signature
	metadata  *Metadata
}

// New builds a SignedRecord: it hashes payload together with metadata,
// signs that combined hash with keypair, and freezes the result.
func New[T Payload[T]](payload T, keypair blockcrypto.KeyPair, metadata *Metadata) (SignedRecord[T], error) {
	h, err := hashPayloadAndMetadata(payload, metadata)
	if err != nil {
		return SignedRecord[T]{}, err
	}
	sig, err := blockcrypto.Sign(keypair, h)
	if err != nil {
		return SignedRecord[T]{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return SignedRecord[T]{
		payload:   payload.Clone(),
		hash:      h,
		publicKey: keypair.Public,
		signature: sig,
		metadata:  metadata.Clone(),
	}, nil
}

func hashPayloadAndMetadata[T Payload[T]](payload T, metadata *Metadata) (digest.Digest, error) {
	data, err := payload.Marshal()
	if err != nil {
		return digest.Digest{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	w := codec.NewWriter()
	w.PutBytes(data)
	metadata.Encode(w)
	return digest.Sum(w.Bytes()), nil
}

// FromParts reassembles a SignedRecord from its five raw fields. A
// storage backend that persists payload, hash, signer, signature and
// metadata as separate columns (see pkg/chain/sqlite) uses this to
// rebuild the record on read, rather than decoding Encode's combined
// wire form. It performs no verification; callers that need that
// guarantee call Verify or VerifyIntegrity afterward.
func FromParts[T Payload[T]](payload T, hash digest.Digest, publicKey blockcrypto.PublicKey, signature blockcrypto.Signature, metadata *Metadata) SignedRecord[T] {
	return SignedRecord[T]{
		payload:   payload,
		hash:      hash,
		publicKey: publicKey,
		signature: signature,
		metadata:  metadata,
	}
}

// Payload returns a clone of the carried payload; callers cannot mutate
// the record's internal copy through it.
func (r SignedRecord[T]) Payload() T {
	return r.payload.Clone()
}

// Hash returns the payload||metadata digest the signature was made over.
func (r SignedRecord[T]) Hash() digest.Digest {
	return r.hash
}

// PublicKey returns the signer's public key.
func (r SignedRecord[T]) PublicKey() blockcrypto.PublicKey {
	return r.publicKey
}

// Signature returns the Ed25519 signature over Hash().
func (r SignedRecord[T]) Signature() blockcrypto.Signature {
	return r.signature
}

// Metadata returns a clone of the attached metadata.
func (r SignedRecord[T]) Metadata() *Metadata {
	return r.metadata.Clone()
}

// Verify checks the stored signature against the stored hash and
// signer only. It does not recompute the hash from the payload and
// metadata — a record decoded from storage is trusted to carry its own
// correct hash field, and catching a mismatch between that field and
// the actual payload bytes is VerifyIntegrity's job, not this one's.
func (r SignedRecord[T]) Verify() error {
	if err := blockcrypto.Verify(r.publicKey, r.hash, r.signature); err != nil {
		if errors.Is(err, blockcrypto.ErrInvalidKey) {
			return fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}

// VerifyIntegrity recomputes the payload||metadata hash from the
// record's current contents and confirms it matches both the stored
// hash field and the stored signature. Use this when a record has
// crossed a trust boundary (e.g. just been read back from a persistent
// chain) and a caller wants the full guarantee rather than Verify's
// signature-only check.
func (r SignedRecord[T]) VerifyIntegrity() error {
	recomputed, err := hashPayloadAndMetadata(r.payload, r.metadata)
	if err != nil {
		return err
	}
	if recomputed != r.hash {
		return fmt.Errorf("%w: stored hash does not match payload and metadata", ErrInvalidSignature)
	}
	return r.Verify()
}

// Encode writes the deterministic wire form of r into w.
func (r SignedRecord[T]) Encode(w *codec.Writer, codecT Codec[T]) error {
	data, err := codecT.Marshal(r.payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	w.PutBytes(data)
	w.PutBytes(r.hash.Bytes())
	w.PutBytes(r.publicKey)
	w.PutBytes(r.signature)
	r.metadata.Encode(w)
	return nil
}

// Decode reads back a SignedRecord written by Encode.
func Decode[T Payload[T]](r *codec.Reader, codecT Codec[T]) (SignedRecord[T], error) {
	var zero SignedRecord[T]

	payloadBytes, err := r.Bytes()
	if err != nil {
		return zero, err
	}
	payload, err := codecT.Unmarshal(payloadBytes)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	hashBytes, err := r.Bytes()
	if err != nil {
		return zero, err
	}
	h, err := digest.FromBytes(hashBytes)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	pub, err := r.Bytes()
	if err != nil {
		return zero, err
	}
	sig, err := r.Bytes()
	if err != nil {
		return zero, err
	}
	metadata, err := DecodeMetadata(r)
	if err != nil {
		return zero, err
	}

	return SignedRecord[T]{
		payload:   payload,
		hash:      h,
		publicKey: blockcrypto.PublicKey(pub),
		signature: blockcrypto.Signature(sig),
		metadata:  metadata,
	}, nil
}
