package block_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nisaacdz/blockify/internal/demo"
	"github.com/nisaacdz/blockify/pkg/block"
	"github.com/nisaacdz/blockify/pkg/blockcrypto"
	"github.com/nisaacdz/blockify/pkg/digest"
	"github.com/nisaacdz/blockify/pkg/record"
)

func signedNote(t *testing.T, kp blockcrypto.KeyPair, body string) record.SignedRecord[demo.Note] {
	t.Helper()
	rec, err := record.New(demo.NewNote(body), kp, record.NewMetadata())
	require.NoError(t, err)
	return rec
}

func TestSealGenesisBlock(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	u := block.NewBuilder[demo.Note](nil, 0)
	u.Push(signedNote(t, kp, "first"))

	b, descriptor, err := block.Seal(u, nil, 1000, demo.Codec{})
	require.NoError(t, err)
	require.Equal(t, uint64(0), b.Position())
	require.Equal(t, digest.Zero, b.PrevHash())
	require.NoError(t, b.Validate(&descriptor))
	require.Equal(t, b.Hash(), descriptor.Hash)
}

func TestSealEmptyBlockHasZeroRoot(t *testing.T) {
	u := block.NewBuilder[demo.Note](nil, 0)
	b, descriptor, err := block.Seal(u, nil, 1000, demo.Codec{})
	require.NoError(t, err)
	require.Equal(t, digest.Zero, b.MerkleRoot())
	require.NoError(t, b.Validate(&descriptor))
}

func TestSealChainsPrevHash(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	u1 := block.NewBuilder[demo.Note](nil, 0)
	u1.Push(signedNote(t, kp, "first"))
	b1, d1, err := block.Seal(u1, nil, 1000, demo.Codec{})
	require.NoError(t, err)

	u2 := block.NewBuilder[demo.Note](nil, 0)
	u2.Push(signedNote(t, kp, "second"))
	b2, d2, err := block.Seal(u2, &d1, 1001, demo.Codec{})
	require.NoError(t, err)

	require.Equal(t, b1.Hash(), b2.PrevHash())
	require.Equal(t, uint64(1), b2.Position())
	require.NoError(t, b2.Validate(&d2))
}

func TestValidateRejectsMismatchedDescriptor(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	u := block.NewBuilder[demo.Note](nil, 0)
	u.Push(signedNote(t, kp, "only"))
	b, descriptor, err := block.Seal(u, nil, 1000, demo.Codec{})
	require.NoError(t, err)

	wrongDescriptor := descriptor
	wrongDescriptor.PrevHash = digest.Sum([]byte("nope"))
	err = b.Validate(&wrongDescriptor)
	require.ErrorIs(t, err, block.ErrBlock)
}

func TestValidateRequiresDescriptor(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	u := block.NewBuilder[demo.Note](nil, 0)
	u.Push(signedNote(t, kp, "only"))
	b, _, err := block.Seal(u, nil, 1000, demo.Codec{})
	require.NoError(t, err)

	err = b.Validate(nil)
	require.ErrorIs(t, err, block.ErrBlock)
}

func TestRecordsDecodeInPushOrder(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	u := block.NewBuilder[demo.Note](record.NewMetadata().Set("k", "v"), 7)
	u.Push(signedNote(t, kp, "a"))
	u.Push(signedNote(t, kp, "b"))

	b, _, err := block.Seal(u, nil, 1234, demo.Codec{})
	require.NoError(t, err)

	recs, err := b.Records()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "a", recs[0].Payload().Body)
	require.Equal(t, "b", recs[1].Payload().Body)
}

func TestMultiRecordMerkleRootOddCount(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	u := block.NewBuilder[demo.Note](nil, 0)
	u.Push(signedNote(t, kp, "a"))
	u.Push(signedNote(t, kp, "b"))
	u.Push(signedNote(t, kp, "c"))

	root1 := u.MerkleRoot()
	root2 := u.MerkleRoot()
	require.Equal(t, root1, root2, "cached root must match freshly computed root")
}
