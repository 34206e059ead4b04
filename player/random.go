package player

import (
	"lukechampine.com/frand"

	"halma/game"
)

// RandomPlayer picks uniformly among the legal moves.
type RandomPlayer struct {
	callbacks
	name  string
	gen   *game.Generator
	moves []game.Move
}

func NewRandomPlayer(name string) *RandomPlayer {
	return &RandomPlayer{name: name}
}

func (p *RandomPlayer) Name() string {
	return p.name
}

func (p *RandomPlayer) OnPlayerTurn(turn int, side game.Piece, b *game.Board) {
	if p.gen == nil || p.gen.Size() != b.Size() {
		p.gen = game.NewGenerator(b.Size(), game.DefaultMoveLimit)
	}
	moves, err := p.gen.Generate(b, side, p.moves)
	p.moves = moves
	if err != nil {
		p.emit(game.NoMove(), err)
		return
	}
	if len(moves) == 0 {
		p.emit(game.NoMove(), nil)
		return
	}
	p.emit(game.Some(moves[frand.Intn(len(moves))]), nil)
}
