package logging_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nisaacdz/blockify/internal/logging"
)

func TestNewParsesLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, logging.New("debug").GetLevel())
	require.Equal(t, zerolog.WarnLevel, logging.New("warn").GetLevel())
	require.Equal(t, zerolog.InfoLevel, logging.New("bogus").GetLevel())
}

func TestDisabledDiscardsEverything(t *testing.T) {
	require.Equal(t, zerolog.Disabled, logging.Disabled().GetLevel())
}
