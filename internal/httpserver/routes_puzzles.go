// internal/httpserver/routes_puzzles.go
//
// Catalogue endpoints:
//   - GET  /puzzles?side=&limit=          → stored puzzles (ids only, words hidden)
//   - GET  /puzzles/{id}?reveal=1,12      → description (metrics + concealed letters)
//   - GET  /puzzles/{id}/text?reveal=&metrics=1 → plain-text render
//   - POST /puzzles/{id}/check            → stateless per-cell check
//   - POST /puzzles                       → add a puzzle (requires auth)
//
// reveal defaults to the first and last cell; "none" reveals nothing.

package httpserver

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ringram/internal/config"
	"github.com/robalobadob/ringram/internal/game"
	"github.com/robalobadob/ringram/internal/ring"
	"github.com/robalobadob/ringram/internal/store"
)

const maxListLimit = 200

func (s *Server) mountPuzzles() {
	s.r.Route("/puzzles", func(r chi.Router) {
		r.Get("/", s.handleListPuzzles)
		r.With(s.requireAuth()).Post("/", s.handleAddPuzzle)
		r.Get("/{id}", s.handleGetPuzzle)
		r.Get("/{id}/text", s.handlePuzzleText)
		r.Post("/{id}/check", s.handlePuzzleCheck)
	})
}

// handleListPuzzles returns catalogue records without their words.
func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	side, err := intParam(q.Get("side"), 0)
	if err != nil || (side != 0 && (side < ring.MinSide || side > ring.MaxSide)) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid side"})
		return
	}
	limit, err := intParam(q.Get("limit"), 50)
	if err != nil || limit <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		return
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	recs, err := s.puzzles.List(r.Context(), side, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	total, err := s.puzzles.Count(r.Context(), side)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": total, "puzzles": recs})
}

type puzzleRes struct {
	ID          string           `json:"id"`
	Side        int              `json:"side"`
	Reveal      []int            `json:"reveal"`
	Description ring.Description `json:"description"`
}

// loadDescribed resolves {id} and ?reveal= into a record and description.
func (s *Server) loadDescribed(r *http.Request) (store.Record, []int, ring.Description, error) {
	rec, err := s.puzzles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return rec, nil, ring.Description{}, err
	}
	reveal, err := revealParam(r.URL.Query().Get("reveal"), rec.Side)
	if err != nil {
		return rec, nil, ring.Description{}, err
	}
	d, err := ring.Describe(rec.Puzzle.Words(), reveal)
	return rec, reveal, d, err
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	rec, reveal, d, err := s.loadDescribed(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, puzzleRes{ID: rec.ID, Side: rec.Side, Reveal: reveal, Description: d})
}

// handlePuzzleText renders the concealed grid, framed by metrics if ?metrics=1.
func (s *Server) handlePuzzleText(w http.ResponseWriter, r *http.Request) {
	_, _, d, err := s.loadDescribed(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var m *ring.Metrics
	if on, _ := strconv.ParseBool(r.URL.Query().Get("metrics")); on {
		m = &d.Metrics
	}
	text, err := ring.Render(d.Letters, m)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text + "\n"))
}

type puzzleCheckRes struct {
	Marks  []game.Mark `json:"marks"`
	Solved bool        `json:"solved"`
}

// handlePuzzleCheck scores a flat letter list without creating a game.
func (s *Server) handlePuzzleCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Letters []string `json:"letters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}
	rec, err := s.puzzles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	solved, err := ring.WordsToSolved(rec.Puzzle)
	if err != nil {
		writeError(w, err)
		return
	}
	marks, err := game.Score(solved, req.Letters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, puzzleCheckRes{Marks: marks, Solved: game.AllHit(marks)})
}

type addPuzzleRes struct {
	store.Record
	Words []string `json:"words"`
}

// handleAddPuzzle validates a word tuple against the puzzle rules and the
// dictionary, then stores it.
func (s *Server) handleAddPuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Words []string `json:"words"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}
	if err := ring.ValidatePuzzleWords(req.Words); err != nil {
		writeError(w, err)
		return
	}
	if err := ring.ValidateWords(req.Words, len(req.Words[0]), s.dict); err != nil {
		writeError(w, err)
		return
	}
	p, _ := ring.NewPuzzle(req.Words)
	rec, err := s.puzzles.Save(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Info().Str("puzzleId", rec.ID).Str("by", currentUser(r).Username).Msg("puzzle added")
	writeJSON(w, http.StatusCreated, addPuzzleRes{Record: rec, Words: rec.Puzzle.Words()})
}

// ------------------------------- params ------------------------------------

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// revealParam parses ?reveal= for a puzzle of the given side.
func revealParam(raw string, side int) ([]int, error) {
	switch raw {
	case "":
		return defaultReveal(side), nil
	case "none":
		return nil, nil
	case "all":
		return []int{ring.RevealAll}, nil
	}
	reveal, err := config.ParseReveal(raw)
	if err != nil {
		return nil, &badParamError{err}
	}
	return reveal, nil
}

// defaultReveal shows the first and last cell.
func defaultReveal(side int) []int {
	s, err := ring.ShapeForSide(side)
	if err != nil {
		return nil
	}
	return []int{1, s.FlatLen()}
}

// badParamError marks unparsable query values as validation failures.
type badParamError struct{ err error }

func (e *badParamError) Error() string { return "bad parameter: " + e.err.Error() }
func (e *badParamError) Unwrap() []error {
	return []error{ring.ErrValidation, e.err}
}

func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
