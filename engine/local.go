package engine

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"halma/experiments/metrics"
	"halma/game"
	"halma/player"
	"halma/searcher"
)

type Option func(l *Local)

func WithLayout(layout string) Option {
	return func(l *Local) {
		if layout != "" {
			l.layout = layout
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(l *Local) {
		if turns > 0 {
			l.maxTurns = turns
		}
	}
}

// WithStartingSide fixes who moves first. By default it is drawn at random.
func WithStartingSide(side game.Piece) Option {
	return func(l *Local) {
		if side.IsSide() {
			l.start = side
		}
	}
}

// reporter is implemented by players that expose search statistics.
type reporter interface {
	LastResult() searcher.Result
}

type pick struct {
	choice game.Choice
	err    error
}

// Local runs a game between two in-process players on the authoritative
// board, validating every move before it is applied.
type Local struct {
	players  map[game.Piece]player.Player
	layout   string
	maxTurns int
	start    game.Piece
	picks    chan pick
	gen      *game.Generator
	legal    []game.Move
}

var _ Engine = (*Local)(nil)

func NewLocal(a, b player.Player, options ...Option) *Local {
	if a == nil || b == nil {
		panic("need two players")
	}
	l := &Local{
		players:  map[game.Piece]player.Player{game.SideA: a, game.SideB: b},
		layout:   game.StartLayout,
		maxTurns: DefaultMaxTurns,
		picks:    make(chan pick, 1),
	}
	for _, option := range options {
		option(l)
	}
	for _, p := range l.players {
		p.OnMovePicked(func(choice game.Choice, err error) {
			select {
			case l.picks <- pick{choice: choice, err: err}:
			default:
				log.Warn().Msg("dropping a second decision for the same turn")
			}
		})
	}
	return l
}

// Run executes the entire game loop. Cancelling ctx stops the game before
// the next decision; an illegal move or a failed decision is returned as an
// error.
func (l *Local) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	board, err := game.LoadLayout(l.layout)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	l.gen = game.NewGenerator(board.Size(), game.DefaultMoveLimit)

	side := l.start
	if side == game.None {
		side = game.SideA
		if frand.Intn(2) == 1 {
			side = game.SideB
		}
	}
	board.SetSideToMove(side)

	gameMetric := metrics.GameMetric{StartingSide: side, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric
	finish := func(reason string) {
		gameMetric.Reason = reason
		gameMetric.Winner = board.State().Winner()
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalMoves = len(moveMetrics)
	}

	log.Info().Msgf("%s (side %v) is starting", l.players[side].Name(), side)

	for turn := 1; ; turn++ {
		if err := ctx.Err(); err != nil {
			finish("")
			return gameMetric, moveMetrics, err
		}
		if board.State().IsOver() {
			finish(ReasonWin)
			break
		}
		if turn > l.maxTurns {
			finish(ReasonTurnLimit)
			break
		}

		p := l.players[side]
		choice, err := l.request(ctx, p, turn, side, board)
		if err != nil {
			finish("")
			return gameMetric, moveMetrics, errors.Wrapf(err, "turn %d: %s", turn, p.Name())
		}
		m, ok := choice.Get()
		if !ok {
			log.Info().Msgf("%s (side %v) has no move", p.Name(), side)
			finish(ReasonNoMoves)
			break
		}

		if err := l.apply(board, side, m); err != nil {
			finish("")
			return gameMetric, moveMetrics, errors.Wrapf(err, "turn %d: %s", turn, p.Name())
		}

		moveMetric := metrics.MoveMetric{Step: turn, Side: side, Move: m.String()}
		if r, ok := p.(reporter); ok {
			moveMetric.SearchMetric = metrics.FromResult(r.LastResult())
		}
		moveMetrics = append(moveMetrics, moveMetric)
		log.Debug().Int("turn", turn).Str("side", side.String()).Str("move", m.String()).Msg("Played")

		side = side.Opponent()
	}

	log.Info().Msgf("game over after %d moves: %s, winner %v", gameMetric.TotalMoves, gameMetric.Reason, gameMetric.Winner)
	return gameMetric, moveMetrics, nil
}

func (l *Local) request(ctx context.Context, p player.Player, turn int, side game.Piece, board *game.Board) (game.Choice, error) {
	p.OnPlayerTurn(turn, side, board)
	select {
	case pk := <-l.picks:
		return pk.choice, pk.err
	case <-ctx.Done():
		return game.NoMove(), ctx.Err()
	}
}

// apply plays m for side after checking it against the generated moves.
func (l *Local) apply(board *game.Board, side game.Piece, m game.Move) error {
	moves, err := l.gen.Generate(board, side, l.legal)
	l.legal = moves
	if err != nil {
		return err
	}
	isLegal := false
	for _, legal := range moves {
		if legal.Equal(m) {
			isLegal = true
			break
		}
	}
	if !isLegal {
		return errors.Wrapf(game.ErrIllegalMove, "%v is not a legal move for side %v", m, side)
	}
	if !board.MakeMove(m) {
		return errors.Wrapf(game.ErrIllegalMove, "%v does not apply", m)
	}
	return nil
}
