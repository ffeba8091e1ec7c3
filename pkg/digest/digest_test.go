package digest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nisaacdz/blockify/pkg/digest"
)

func TestSumDeterministic(t *testing.T) {
	a := digest.Sum([]byte("hello"))
	b := digest.Sum([]byte("hello"))
	require.Equal(t, a, b)
	require.NotEqual(t, digest.Zero, a)
}

func TestZeroIsZero(t *testing.T) {
	require.True(t, digest.Zero.IsZero())
	require.False(t, digest.Sum([]byte("x")).IsZero())
}

func TestHexRoundTrip(t *testing.T) {
	d := digest.Sum([]byte("round trip"))
	s := d.String()
	back, err := digest.FromHex(s)
	require.NoError(t, err)
	require.True(t, d.Equal(back))
}

func TestFromHexRejectsWrongLength(t *testing.T) {
	_, err := digest.FromHex("abcd")
	require.Error(t, err)
}

func TestLessIsTotalOrder(t *testing.T) {
	a, err := digest.FromBytes(append([]byte{0x01}, make([]byte, 31)...))
	require.NoError(t, err)
	b, err := digest.FromBytes(append([]byte{0x02}, make([]byte, 31)...))
	require.NoError(t, err)
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
}
