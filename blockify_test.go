package blockify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	blockify "github.com/nisaacdz/blockify"
	"github.com/nisaacdz/blockify/internal/demo"
)

func TestEndToEndGenerateSignAppendScan(t *testing.T) {
	ctx := context.Background()

	kp, err := blockify.GenerateKeyPair()
	require.NoError(t, err)

	note := demo.NewNote("session:0 choice:2")
	rec, err := blockify.NewRecord(note, kp, blockify.NewMetadata().Set("kind", "vote"))
	require.NoError(t, err)
	require.NoError(t, rec.Verify())

	u := blockify.NewBuilder[demo.Note](nil, 0)
	u.Push(rec)

	c := blockify.NewMemoryChain[demo.Note](demo.Codec{})
	defer c.Close()

	descriptor, err := c.Append(ctx, u)
	require.NoError(t, err)
	require.Equal(t, uint64(0), descriptor.Position)

	require.NoError(t, blockify.ScanChain[demo.Note](ctx, c))

	b, err := c.BlockAt(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, blockify.ZeroDigest, b.PrevHash())
}
