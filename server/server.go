package server

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"halma/game"
	"halma/searcher"
)

// MoveRequest asks for a decision on a position. Depth, when set,
// overrides the server's configured nominal depth.
type MoveRequest struct {
	Layout string `json:"layout"`
	Side   string `json:"side"`
	Depth  *int   `json:"depth,omitempty"`
}

type MoveResponse struct {
	Move    string  `json:"move,omitempty"`
	NoMove  bool    `json:"no_move"`
	Eval    float64 `json:"eval"`
	Depth   int     `json:"depth"`
	Nodes   int64   `json:"nodes"`
	TTHits  int64   `json:"tt_hits"`
	Elapsed string  `json:"elapsed"`
}

type LegalMovesResponse struct {
	Moves []string `json:"moves"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers move requests. Every request builds its own board and
// searcher, so requests are served concurrently without shared state.
type Server struct {
	config searcher.Config
}

func New(config searcher.Config) *Server {
	return &Server{config: config}
}

// Router returns the HTTP handler with every route mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/findmove", s.handleFindMove)
	r.Post("/legalmoves", s.handleLegalMoves)
	return r
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Msgf("starting move server on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

func parseSide(side string) (game.Piece, error) {
	switch side {
	case "A", "a":
		return game.SideA, nil
	case "B", "b":
		return game.SideB, nil
	default:
		return game.None, errors.Errorf("side must be A or B, got %q", side)
	}
}

func decodePosition(r *http.Request) (MoveRequest, *game.Board, game.Piece, error) {
	var payload MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, nil, game.None, errors.Wrap(err, "invalid payload")
	}
	side, err := parseSide(payload.Side)
	if err != nil {
		return payload, nil, game.None, err
	}
	b, err := game.LoadLayout(payload.Layout)
	if err != nil {
		return payload, nil, game.None, err
	}
	b.SetSideToMove(side)
	return payload, b, side, nil
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	payload, b, side, err := decodePosition(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	options := []searcher.Option{searcher.WithConfig(s.config)}
	if payload.Depth != nil {
		if *payload.Depth < 0 || *payload.Depth > searcher.MaxDepth {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "depth out of range"})
			return
		}
		options = append(options, searcher.WithDepth(*payload.Depth))
	}

	result, err := searcher.New(options...).Decide(b, side)
	if err != nil {
		log.Error().Err(err).Str("layout", payload.Layout).Msg("search failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := MoveResponse{
		NoMove:  result.Move.IsNone(),
		Eval:    finite(result.Eval),
		Depth:   result.Depth,
		Nodes:   result.Stats.Nodes,
		TTHits:  result.Stats.TTHits,
		Elapsed: result.Stats.Elapsed.String(),
	}
	if m, ok := result.Move.Get(); ok {
		resp.Move = m.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	_, b, side, err := decodePosition(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	moves, err := game.NewGenerator(b.Size(), s.config.MaxMoves).Generate(b, side, nil)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	resp := LegalMovesResponse{Moves: make([]string, len(moves))}
	for i, m := range moves {
		resp.Moves[i] = m.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// finite clamps infinities, which JSON cannot carry.
func finite(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	default:
		return v
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
