package record

import "errors"

// Sentinel errors for the record layer, checked with errors.Is.
var (
	// ErrSerialization is returned when a payload's Codec fails to
	// marshal or unmarshal it.
	ErrSerialization = errors.New("record: serialization failed")

	// ErrInvalidSignature is returned by Verify/VerifyIntegrity when the
	// stored signature does not match the stored hash and signer.
	ErrInvalidSignature = errors.New("record: invalid signature")

	// ErrInvalidKey is returned when a signer's public key is malformed.
	ErrInvalidKey = errors.New("record: invalid key")
)
