// Package blockcrypto provides the Ed25519 key generation, hashing and
// sign/verify primitives every other layer of blockify builds on.
package blockcrypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/nisaacdz/blockify/pkg/digest"
)

// DomainRecord is the domain-separation tag mixed into every signature
// blockify produces, so a signature minted for this library can never
// be replayed as valid input to an unrelated Ed25519 consumer.
const DomainRecord = "BLOCKIFY_RECORD_V1"

// PublicKey is an Ed25519 public key.
type PublicKey []byte

// Signature is an Ed25519 signature.
type Signature []byte

// KeyPair holds a private/public Ed25519 key pair.
type KeyPair struct {
	Private ed25519.PrivateKey
	Public  PublicKey
}

// GenerateKeyPair creates a new random Ed25519 key pair.
func GenerateKeyPair() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, fmt.Errorf("blockcrypto: generate key pair: %w", err)
	}
	return KeyPair{Private: priv, Public: PublicKey(pub)}, nil
}

// KeyPairFromSeed deterministically derives a key pair from a 32-byte
// seed, mirroring the teacher's seed-based factory for reproducible
// test fixtures and CLI key import.
func KeyPairFromSeed(seed []byte) (KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return KeyPair{}, fmt.Errorf("%w: seed must be %d bytes, got %d", ErrInvalidKey, ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return KeyPair{Private: priv, Public: PublicKey(priv.Public().(ed25519.PublicKey))}, nil
}

// KeyPairFromPrivateHex loads a key pair from a hex-encoded 64-byte
// Ed25519 private key, the format cmd/blockifyctl persists to disk.
func KeyPairFromPrivateHex(s string) (KeyPair, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return KeyPair{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(b) != ed25519.PrivateKeySize {
		return KeyPair{}, fmt.Errorf("%w: private key must be %d bytes, got %d", ErrInvalidKey, ed25519.PrivateKeySize, len(b))
	}
	priv := ed25519.PrivateKey(b)
	return KeyPair{Private: priv, Public: PublicKey(priv.Public().(ed25519.PublicKey))}, nil
}

// PrivateHex renders the private key as lowercase hex, for CLI storage.
func (k KeyPair) PrivateHex() string {
	return hex.EncodeToString(k.Private)
}

// PublicHex renders the public key as lowercase hex.
func (p PublicKey) PublicHex() string {
	return hex.EncodeToString(p)
}

func domainMessage(d digest.Digest) []byte {
	msg := make([]byte, 0, len(DomainRecord)+digest.Size)
	msg = append(msg, DomainRecord...)
	msg = append(msg, d.Bytes()...)
	return digest.Sum(msg).Bytes()
}

// Sign signs a digest with the given key pair's private key, under
// blockify's record domain separation tag.
func Sign(k KeyPair, d digest.Digest) (Signature, error) {
	if len(k.Private) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes", ErrInvalidKey, ed25519.PrivateKeySize)
	}
	sig := ed25519.Sign(k.Private, domainMessage(d))
	return Signature(sig), nil
}

// Verify checks a signature over a digest against a public key. It
// returns ErrInvalidKey (wrapped) for a public key of the wrong size,
// and ErrInvalidSignature (wrapped for a wrong-size signature) on any
// other failure.
func Verify(pub PublicKey, d digest.Digest, sig Signature) error {
	if len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: public key must be %d bytes", ErrInvalidKey, ed25519.PublicKeySize)
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: signature must be %d bytes", ErrInvalidSignature, ed25519.SignatureSize)
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), domainMessage(d), []byte(sig)) {
		return ErrInvalidSignature
	}
	return nil
}

// Hash computes the SHA-256 digest of arbitrary bytes. It is exported
// here, rather than only in pkg/digest, because callers working at the
// crypto layer (e.g. hashing a payload before signing) should not need
// to import pkg/digest directly just to call Sum.
func Hash(data []byte) digest.Digest {
	return digest.Sum(data)
}
