package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nisaacdz/blockify/pkg/codec"
)

func TestScalarRoundTrip(t *testing.T) {
	w := codec.NewWriter()
	w.PutString("hello")
	w.PutUint64(42)
	w.PutInt64(-7)
	w.PutBytes([]byte{1, 2, 3})

	r := codec.NewReader(w.Bytes())
	s, err := r.String()
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	u, err := r.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(42), u)

	i, err := r.Int64()
	require.NoError(t, err)
	require.Equal(t, int64(-7), i)

	b, err := r.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)

	require.Equal(t, 0, r.Remaining())
}

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	keys := []string{"z", "a", "m"}
	m := map[string]string{"z": "1", "a": "2", "m": "3"}

	w := codec.NewWriter()
	w.PutOrderedMap(keys, m)

	r := codec.NewReader(w.Bytes())
	gotKeys, gotMap, err := r.OrderedMap()
	require.NoError(t, err)
	require.Equal(t, keys, gotKeys)
	require.Equal(t, m, gotMap)
}

func TestDeterministicAcrossCalls(t *testing.T) {
	build := func() []byte {
		w := codec.NewWriter()
		w.PutString("payload")
		w.PutOrderedMap([]string{"b", "a"}, map[string]string{"a": "1", "b": "2"})
		return w.Bytes()
	}
	require.Equal(t, build(), build())
}

func TestTruncatedInputErrors(t *testing.T) {
	r := codec.NewReader([]byte{0, 0})
	_, err := r.Uint64()
	require.ErrorIs(t, err, codec.ErrTruncated)
}

func TestDuplicateMapKeyRejected(t *testing.T) {
	w := codec.NewWriter()
	w.PutUint32(2)
	w.PutString("k")
	w.PutString("1")
	w.PutString("k")
	w.PutString("2")

	r := codec.NewReader(w.Bytes())
	_, _, err := r.OrderedMap()
	require.Error(t, err)
}
