package player

import (
	"github.com/pkg/errors"

	"halma/game"
	"halma/searcher"
)

// Bot picks moves with a Searcher. It searches on a private copy of the
// driver's board, so two bots never share mutable state.
type Bot struct {
	callbacks
	name     string
	searcher *searcher.Searcher
	board    *game.Board
	last     searcher.Result
}

func NewBot(name string, options ...searcher.Option) *Bot {
	return &Bot{
		name:     name,
		searcher: searcher.New(options...),
	}
}

func (b *Bot) Name() string {
	return b.name
}

func (b *Bot) Config() searcher.Config {
	return b.searcher.Config()
}

// LastResult reports the most recent decision, including its statistics.
func (b *Bot) LastResult() searcher.Result {
	return b.last
}

func (b *Bot) OnPlayerTurn(turn int, side game.Piece, board *game.Board) {
	if b.board == nil || b.board.Size() != board.Size() {
		b.board = board.Clone()
	} else {
		b.board.CopyFrom(board)
	}

	result, err := b.searcher.Decide(b.board, side)
	if err != nil {
		b.emit(game.NoMove(), err)
		return
	}
	b.last = result
	if result.Move.IsNone() && result.Depth == 0 {
		// A none choice would read as "no legal move".
		b.emit(game.NoMove(), errors.New("searched to depth 0, which evaluates without choosing a move"))
		return
	}
	b.emit(result.Move, nil)
}
