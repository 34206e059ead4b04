package player

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"halma/game"
	"halma/server"
)

const remoteTimeout = 2 * time.Minute

// Remote asks a move server over HTTP for each decision.
type Remote struct {
	callbacks
	name   string
	url    string
	client *http.Client
}

func NewRemote(name, url string) *Remote {
	return &Remote{
		name:   name,
		url:    strings.TrimSuffix(url, "/"),
		client: &http.Client{Timeout: remoteTimeout},
	}
}

func (p *Remote) Name() string {
	return p.name
}

func (p *Remote) OnPlayerTurn(turn int, side game.Piece, b *game.Board) {
	choice, err := p.requestMove(side, b)
	p.emit(choice, err)
}

// requestMove posts the position to /findmove and parses the reply.
func (p *Remote) requestMove(side game.Piece, b *game.Board) (game.Choice, error) {
	body, err := json.Marshal(server.MoveRequest{Layout: b.Layout(), Side: side.String()})
	if err != nil {
		return game.NoMove(), err
	}

	resp, err := p.client.Post(p.url+"/findmove", "application/json", bytes.NewReader(body))
	if err != nil {
		return game.NoMove(), errors.Wrap(err, "requesting move")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.NoMove(), errors.Errorf("move server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var reply server.MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return game.NoMove(), errors.Wrap(err, "decoding move")
	}
	if reply.NoMove {
		return game.NoMove(), nil
	}
	m, err := game.ParseMove(reply.Move)
	if err != nil {
		return game.NoMove(), err
	}
	return game.Some(m), nil
}
