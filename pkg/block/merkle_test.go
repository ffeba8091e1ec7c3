package block_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nisaacdz/blockify/pkg/block"
	"github.com/nisaacdz/blockify/pkg/digest"
)

func leaves(n int) []digest.Digest {
	out := make([]digest.Digest, n)
	for i := range out {
		out[i] = digest.Sum([]byte{byte(i)})
	}
	return out
}

func TestComputeRootEmpty(t *testing.T) {
	require.Equal(t, digest.Zero, block.ComputeRoot(nil))
}

func TestComputeRootSingleLeafFoldsOnce(t *testing.T) {
	h0 := digest.Sum([]byte{0})
	root := block.ComputeRoot([]digest.Digest{h0})
	require.NotEqual(t, h0, root)
	require.Equal(t, digest.Sum(h0.Bytes()), root)
}

func TestComputeRootDeterministic(t *testing.T) {
	ls := leaves(5)
	require.Equal(t, block.ComputeRoot(ls), block.ComputeRoot(ls))
}

func TestComputeRootOddCountDuplicatesLast(t *testing.T) {
	three := leaves(3)
	four := append(leaves(3), three[2])
	require.Equal(t, block.ComputeRoot(four), block.ComputeRoot(three))
}

func TestComputeRootOrderSensitive(t *testing.T) {
	a := leaves(4)
	b := make([]digest.Digest, len(a))
	copy(b, a)
	b[0], b[1] = b[1], b[0]
	require.NotEqual(t, block.ComputeRoot(a), block.ComputeRoot(b))
}
