package record_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nisaacdz/blockify/internal/demo"
	"github.com/nisaacdz/blockify/pkg/blockcrypto"
	"github.com/nisaacdz/blockify/pkg/codec"
	"github.com/nisaacdz/blockify/pkg/record"
)

func TestHashDeterministic(t *testing.T) {
	note := demo.NewNote("hello")
	h1, err := record.Hash(note)
	require.NoError(t, err)
	h2, err := record.Hash(note)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	note := demo.NewNote("vote")
	sig, err := record.Sign(note, kp)
	require.NoError(t, err)
	require.NoError(t, record.Verify(note, sig, kp.Public))
}

func TestVerifyFailsForDifferentPayload(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	note := demo.NewNote("vote")
	sig, err := record.Sign(note, kp)
	require.NoError(t, err)

	other := demo.NewNote("different vote")
	err = record.Verify(other, sig, kp.Public)
	require.ErrorIs(t, err, record.ErrInvalidSignature)
}

func TestNewSignedRecordAndVerify(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	note := demo.NewNote("vote")
	md := record.NewMetadata().Set("source", "test")

	rec, err := record.New(note, kp, md)
	require.NoError(t, err)
	require.NoError(t, rec.Verify())
	require.NoError(t, rec.VerifyIntegrity())
	require.True(t, rec.Payload().Equal(note))
}

func TestMetadataDomainSeparation(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	note := demo.NewNote("vote")

	recA, err := record.New(note, kp, record.NewMetadata().Set("k", "a"))
	require.NoError(t, err)
	recB, err := record.New(note, kp, record.NewMetadata().Set("k", "b"))
	require.NoError(t, err)

	require.NotEqual(t, recA.Hash(), recB.Hash())

	payloadOnlyHash, err := record.Hash(note)
	require.NoError(t, err)
	require.NotEqual(t, payloadOnlyHash, recA.Hash())
}

func TestMetadataInsertionOrderAffectsHash(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)
	note := demo.NewNote("vote")

	mdAB := record.NewMetadata().Set("a", "1").Set("b", "2")
	mdBA := record.NewMetadata().Set("b", "2").Set("a", "1")

	recAB, err := record.New(note, kp, mdAB)
	require.NoError(t, err)
	recBA, err := record.New(note, kp, mdBA)
	require.NoError(t, err)

	require.NotEqual(t, recAB.Hash(), recBA.Hash())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	note := demo.NewNote("vote")
	rec, err := record.New(note, kp, record.NewMetadata().Set("k", "v"))
	require.NoError(t, err)

	w := codec.NewWriter()
	require.NoError(t, rec.Encode(w, demo.Codec{}))

	decoded, err := record.Decode[demo.Note](codec.NewReader(w.Bytes()), demo.Codec{})
	require.NoError(t, err)
	require.True(t, decoded.Payload().Equal(note))
	require.Equal(t, rec.Hash(), decoded.Hash())
	require.NoError(t, decoded.Verify())
}
