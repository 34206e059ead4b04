package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"halma/experiments/metrics"
	"halma/searcher"
)

// Side A wins with k15>l15 whoever plays it.
const nearWinLayout = "16/16/16/16/16/16/16/16/16/16/16/14PP/13PPP/12PPPP/10P1PPPP/p10PPPPP"

func agents() []metrics.AgentConfig {
	shallow := searcher.DefaultConfig()
	shallow.Depth = 1
	shallow.AdaptiveDepth = false
	plain := shallow
	plain.Pruning, plain.Ordering, plain.Transpositions = false, false, false
	return []metrics.AgentConfig{{ID: 1, Config: shallow}, {ID: 2, Config: plain}}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	t.Run("seats alternate sides", func(t *testing.T) {
		configs := agents()
		opts := Options{Games: 4, Concurrency: 2, MaxTurns: 10, Layout: nearWinLayout}

		summaries, err := Run(context.Background(), "test", configs, []MatchUp{{configs[0], configs[1]}}, opts)

		require.NoError(t, err)
		require.Len(t, summaries, 1)
		s := summaries[0]
		require.Equal(t, 4, s.Games)
		require.Equal(t, 2, s.Wins1)
		require.Equal(t, 2, s.Wins2)
		require.Zero(t, s.Unfinished)
		require.Equal(t, 4, s.Moves)
	})

	t.Run("unfinished games hit the turn limit and are stored", func(t *testing.T) {
		configs := agents()
		out := t.TempDir()
		opts := Options{Games: 2, Concurrency: 2, MaxTurns: 4, OutDir: out}
		opts.Layout = DefaultOptions().Layout

		summaries, err := Run(context.Background(), "limit", configs, []MatchUp{{configs[0], configs[1]}}, opts)

		require.NoError(t, err)
		require.Equal(t, 2, summaries[0].Unfinished)
		require.Equal(t, 8, summaries[0].Moves)

		dirs, err := filepath.Glob(filepath.Join(out, "limit", "*"))
		require.NoError(t, err)
		require.Len(t, dirs, 1)
		require.Len(t, readCSV(t, filepath.Join(dirs[0], "agent_configs.csv")), 3)
		require.Len(t, readCSV(t, filepath.Join(dirs[0], "game_records.csv")), 3)
		moves := readCSV(t, filepath.Join(dirs[0], "move_records.csv"))
		require.Len(t, moves, 9)
		require.Equal(t, "1", moves[1][0])
		require.Equal(t, "1", moves[1][4], "Depth column")
	})

	t.Run("a cancelled context stops the experiment", func(t *testing.T) {
		configs := agents()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, "cancelled", configs, []MatchUp{{configs[0], configs[1]}}, DefaultOptions())

		require.ErrorIs(t, err, context.Canceled)
	})
}
