package block_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nisaacdz/blockify/internal/demo"
	"github.com/nisaacdz/blockify/pkg/block"
	"github.com/nisaacdz/blockify/pkg/blockcrypto"
	"github.com/nisaacdz/blockify/pkg/codec"
)

// TestHeaderRoundTripsAsSingleBlob exercises EncodeHeader/DecodeHeader/
// FromParts as a storage backend that persists a block's header as one
// opaque blob (rather than one column per field, the way pkg/chain/sqlite
// does it) would use them.
func TestHeaderRoundTripsAsSingleBlob(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	u := block.NewBuilder[demo.Note](nil, 3)
	rec := signedNote(t, kp, "blob")
	u.Push(rec)

	sealed, _, err := block.Seal(u, nil, 42, demo.Codec{})
	require.NoError(t, err)

	w := codec.NewWriter()
	sealed.EncodeHeader(w)

	r := codec.NewReader(w.Bytes())
	position, prevHash, merkleRoot, nonce, timestamp, hash, metadata, err := block.DecodeHeader(r)
	require.NoError(t, err)

	recordBytes, err := block.EncodeRecord(rec, demo.Codec{})
	require.NoError(t, err)

	rebuilt := block.FromParts(position, prevHash, merkleRoot, nonce, timestamp, hash, metadata, [][]byte{recordBytes}, demo.Codec{})

	require.Equal(t, sealed.Hash(), rebuilt.Hash())
	require.Equal(t, sealed.Position(), rebuilt.Position())
	descriptor := rebuilt.Descriptor()
	require.NoError(t, rebuilt.Validate(&descriptor))
}
