package searcher

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"halma/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestDecisionLogging(t *testing.T) {
	var buf bytes.Buffer
	logger, level := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
	})

	t.Run("decisions are quiet above debug level", func(t *testing.T) {
		buf.Reset()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)

		_, err := New(WithDepth(1)).Decide(game.NewStartBoard(), game.SideA)

		require.NoError(t, err)
		require.Zero(t, buf.Len())
	})

	t.Run("decisions log their statistics at debug level", func(t *testing.T) {
		buf.Reset()
		zerolog.SetGlobalLevel(zerolog.DebugLevel)

		_, err := New(WithDepth(1)).Decide(game.NewStartBoard(), game.SideA)

		require.NoError(t, err)
		require.Contains(t, buf.String(), `"tt_hits"`)
		require.Contains(t, buf.String(), `"depth":1`)
	})
}
