package blockcrypto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nisaacdz/blockify/pkg/blockcrypto"
	"github.com/nisaacdz/blockify/pkg/digest"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	d := digest.Sum([]byte("message"))
	sig, err := blockcrypto.Sign(kp, d)
	require.NoError(t, err)

	require.NoError(t, blockcrypto.Verify(kp.Public, d, sig))
}

func TestVerifyFailsWithWrongKey(t *testing.T) {
	kp1, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)
	kp2, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	d := digest.Sum([]byte("message"))
	sig, err := blockcrypto.Sign(kp1, d)
	require.NoError(t, err)

	err = blockcrypto.Verify(kp2.Public, d, sig)
	require.ErrorIs(t, err, blockcrypto.ErrInvalidSignature)
}

func TestVerifyFailsOnTamperedDigest(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	d := digest.Sum([]byte("message"))
	sig, err := blockcrypto.Sign(kp, d)
	require.NoError(t, err)

	tampered := digest.Sum([]byte("different message"))
	err = blockcrypto.Verify(kp.Public, tampered, sig)
	require.ErrorIs(t, err, blockcrypto.ErrInvalidSignature)
}

func TestKeyPairFromSeedIsDeterministic(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	kp1, err := blockcrypto.KeyPairFromSeed(seed)
	require.NoError(t, err)
	kp2, err := blockcrypto.KeyPairFromSeed(seed)
	require.NoError(t, err)
	require.Equal(t, kp1.Public.PublicHex(), kp2.Public.PublicHex())
}

func TestKeyPairFromPrivateHexRoundTrip(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	loaded, err := blockcrypto.KeyPairFromPrivateHex(kp.PrivateHex())
	require.NoError(t, err)
	require.Equal(t, kp.Public.PublicHex(), loaded.Public.PublicHex())
}

func TestKeyPairFromPrivateHexRejectsBadInput(t *testing.T) {
	_, err := blockcrypto.KeyPairFromPrivateHex("not hex")
	require.ErrorIs(t, err, blockcrypto.ErrInvalidKey)

	_, err = blockcrypto.KeyPairFromPrivateHex("abcd")
	require.ErrorIs(t, err, blockcrypto.ErrInvalidKey)
}
