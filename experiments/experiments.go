package experiments

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"halma/engine"
	"halma/experiments/metrics"
	"halma/game"
	"halma/player"
	"halma/searcher"
)

const (
	NumGames = 10 // Per match up
	MaxTurns = 400
)

// Options controls how an experiment is played and where results go.
type Options struct {
	Games       int
	Concurrency int
	MaxTurns    int
	Layout      string
	OutDir      string // No CSV output when empty
}

func DefaultOptions() Options {
	return Options{
		Games:       NumGames,
		Concurrency: 4,
		MaxTurns:    MaxTurns,
		Layout:      game.StartLayout,
	}
}

// MatchUp pairs two agents. Seats alternate sides from game to game.
type MatchUp struct {
	Agent1 metrics.AgentConfig
	Agent2 metrics.AgentConfig
}

type Summary struct {
	MatchUp
	Games      int
	Wins1      int
	Wins2      int
	Unfinished int
	Moves      int
}

func (s Summary) String() string {
	return fmt.Sprintf("agent%d %d - %d agent%d (%d unfinished, %d moves)",
		s.Agent1.ID, s.Wins1, s.Wins2, s.Agent2.ID, s.Unfinished, s.Moves)
}

// RunAblationExperiment pairs the baseline against agents that each drop one
// search feature. All of them should play identically apart from speed,
// except adaptive depth which changes the endgame horizon.
func RunAblationExperiment(ctx context.Context, opts Options) ([]Summary, error) {
	baseline := metrics.AgentConfig{ID: 0, Config: searcher.DefaultConfig()}
	configs := []metrics.AgentConfig{baseline}
	for i, option := range []searcher.Option{
		searcher.WithPruning(false),
		searcher.WithOrdering(false),
		searcher.WithTranspositions(false),
		searcher.WithAdaptiveDepth(false),
	} {
		c := baseline.Config
		option(&c)
		configs = append(configs, metrics.AgentConfig{ID: i + 1, Config: c})
	}

	matchUps := []MatchUp{}
	for _, config := range configs[1:] {
		matchUps = append(matchUps, MatchUp{baseline, config})
	}
	return Run(ctx, "ablation", configs, matchUps, opts)
}

// RunDepthExperiment pairs the baseline against deeper searchers.
func RunDepthExperiment(ctx context.Context, opts Options) ([]Summary, error) {
	baseline := metrics.AgentConfig{ID: 0, Config: searcher.DefaultConfig()}
	configs := []metrics.AgentConfig{baseline}
	matchUps := []MatchUp{}
	for depth := 1; depth <= 3; depth++ {
		c := baseline.Config
		c.Depth = depth
		config := metrics.AgentConfig{ID: depth, Config: c}
		configs = append(configs, config)
		matchUps = append(matchUps, MatchUp{baseline, config})
	}
	return Run(ctx, "depth", configs, matchUps, opts)
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveMetric
}

// Run plays opts.Games games per matchup, up to opts.Concurrency at once.
// Every game owns its players, so no searcher state is shared.
func Run(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps []MatchUp, opts Options) ([]Summary, error) {
	if opts.Games < 1 {
		opts.Games = NumGames
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	log.Info().Msgf("starting %s experiment...", name)

	results := make([]gameResult, len(matchUps)*opts.Games)
	summaries := make([]Summary, len(matchUps))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for mi, matchUp := range matchUps {
		mi, matchUp := mi, matchUp
		summaries[mi] = Summary{MatchUp: matchUp, Games: opts.Games}
		log.Info().Msgf("starting matchup %d of %d between agent%d=%+v and agent%d=%+v...",
			mi+1, len(matchUps), matchUp.Agent1.ID, matchUp.Agent1.Config, matchUp.Agent2.ID, matchUp.Agent2.Config)

		for i := 0; i < opts.Games; i++ {
			i := i
			id := mi*opts.Games + i
			g.Go(func() error {
				// Agent1 plays side A in even games
				a, b := matchUp.Agent1, matchUp.Agent2
				if i%2 == 1 {
					a, b = b, a
				}
				gameMetric, moveMetrics, err := runGame(ctx, a, b, opts)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				results[id] = gameResult{
					record: metrics.GameRecord{ID: id + 1, Agent1: a.ID, Agent2: b.ID, GameMetric: gameMetric},
					moves:  moveMetrics,
				}

				mu.Lock()
				s := &summaries[mi]
				switch {
				case gameMetric.Winner == game.None:
					s.Unfinished++
				case (gameMetric.Winner == game.SideA) == (i%2 == 0):
					s.Wins1++
				default:
					s.Wins2++
				}
				s.Moves += gameMetric.TotalMoves
				mu.Unlock()

				log.Info().Msgf("completed matchup %d of %d game %d with winner: %v (%s)",
					mi+1, len(matchUps), i+1, gameMetric.Winner, gameMetric.Reason)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for mi, s := range summaries {
		log.Info().Msgf("completed matchup %d of %d: %v", mi+1, len(matchUps), s)
	}
	log.Info().Msgf("completed %s experiment", name)

	if opts.OutDir == "" {
		return summaries, nil
	}
	if err := store(name, configs, results, opts.OutDir); err != nil {
		return summaries, err
	}
	return summaries, nil
}

// runGame plays a single game with agent a on side A.
func runGame(ctx context.Context, a, b metrics.AgentConfig, opts Options) (metrics.GameMetric, []metrics.MoveMetric, error) {
	e := engine.NewLocal(
		player.NewBot(fmt.Sprintf("agent%d", a.ID), searcher.WithConfig(a.Config)),
		player.NewBot(fmt.Sprintf("agent%d", b.ID), searcher.WithConfig(b.Config)),
		engine.WithLayout(opts.Layout),
		engine.WithMaxTurns(opts.MaxTurns),
		engine.WithStartingSide(game.SideA),
	)
	return e.Run(ctx)
}

func store(name string, configs []metrics.AgentConfig, results []gameResult, root string) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err = writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, r := range results {
		gameRecords = append(gameRecords, r.record)
		for _, mm := range r.moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: r.record.ID, MoveMetric: mm})
		}
	}

	if err = writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err = writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
