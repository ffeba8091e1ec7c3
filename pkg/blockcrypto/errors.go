package blockcrypto

import "errors"

// Sentinel errors for the crypto layer, checked with errors.Is.
var (
	// ErrInvalidKey is returned when a key's size or encoding is malformed.
	ErrInvalidKey = errors.New("blockcrypto: invalid key")

	// ErrInvalidSignature is returned when a signature fails verification
	// or has the wrong size.
	ErrInvalidSignature = errors.New("blockcrypto: invalid signature")
)
