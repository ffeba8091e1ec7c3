package demo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nisaacdz/blockify/internal/demo"
	"github.com/nisaacdz/blockify/pkg/blockcrypto"
	"github.com/nisaacdz/blockify/pkg/record"
)

func TestVoteRoundTripsThroughGeneratedCodec(t *testing.T) {
	kp, err := blockcrypto.GenerateKeyPair()
	require.NoError(t, err)

	v := demo.NewVote(2, 7)
	rec, err := v.Record(kp, record.NewMetadata().Set("round", "3"))
	require.NoError(t, err)
	require.NoError(t, rec.Verify())

	data, err := demo.VoteCodec{}.Marshal(v)
	require.NoError(t, err)
	back, err := demo.VoteCodec{}.Unmarshal(data)
	require.NoError(t, err)
	require.True(t, v.Equal(back))
}

func TestVoteCloneIsIndependent(t *testing.T) {
	v := demo.NewVote(1, 9)
	cl := v.Clone()
	require.True(t, v.Equal(cl))
	cl.Choice = 99
	require.False(t, v.Equal(cl))
}
