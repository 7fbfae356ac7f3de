// internal/httpserver/server.go
//
// HTTP server wiring for the ringram backend.
// Responsibilities:
//   - Router + middleware (request log, JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Catalogue endpoints: /puzzles (see routes_puzzles.go).
//   - Game endpoints (optional auth): POST /game/new, POST /game/check.
//   - Daily puzzle endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine (see auth.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token is present;
//     routes can still run for guests.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ringram/internal/config"
	"github.com/robalobadob/ringram/internal/game"
	"github.com/robalobadob/ringram/internal/ring"
	"github.com/robalobadob/ringram/internal/store"
	"github.com/robalobadob/ringram/internal/words"
)

// Server bundles router, stores, dictionary and DB handle.
type Server struct {
	r       *chi.Mux
	cfg     *config.Config
	dict    *words.Dictionary
	puzzles store.Puzzles
	games   store.Games
	db      *sql.DB
}

// New constructs a Server, installs middleware, and registers routes.
// db holds users, game history and daily results; puzzles may live there
// too or in memory.
func New(cfg *config.Config, dict *words.Dictionary, puzzles store.Puzzles, db *sql.DB) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		dict:    dict,
		puzzles: puzzles,
		games:   store.NewMemoryGames(),
		db:      db,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                          // add X-Request-ID
	s.r.Use(chimw.RealIP)                             // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                            // one log line per request
	s.r.Use(chimw.Recoverer)                          // recover from panics
	s.r.Use(chimw.Timeout(cfg.Server.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                          // default JSON responses
	s.r.Use(cors(cfg.Server.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"ringram","endpoints":["/health","/puzzles","/daily","POST /game/new","POST /game/check","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleDebugWords)

	// Catalogue
	s.mountPuzzles()

	// Game endpoints: OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/check", s.handleCheck)

	// Daily puzzle: OPTIONAL AUTH (guests can play; result persisted on win)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Handler exposes the router (useful for tests and custom http.Server setups).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes a debug line per request with status and latency.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Debug().
				Str("requestId", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("took", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes:
// validation/shape → 400, not found → 404, finished game → 409, else 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ring.ErrValidation), errors.Is(err, ring.ErrShape), errors.Is(err, game.ErrBadLetters):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid", "detail": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
	case errors.Is(err, game.ErrFinished):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "finished"})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server_error"})
	}
}

func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	stats := map[string]int{}
	for side, n := range s.dict.Stats() {
		stats[strconv.Itoa(side)] = n
	}
	n, err := s.puzzles.Count(r.Context(), 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": stats, "puzzles": n})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	PuzzleID string `json:"puzzleId"` // optional; random stored puzzle of the daily side if empty
	Reveal   []int  `json:"reveal"`   // optional; first and last cell if empty
}
type newGameRes struct {
	GameID      string           `json:"gameId"`
	PuzzleID    string           `json:"puzzleId"`
	MaxAttempts int              `json:"maxAttempts"`
	Description ring.Description `json:"description"`
}

// handleNewGame creates a new in-memory game and persists a DB "owner" row
// (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	rec, err := s.pickPuzzle(r, req.PuzzleID)
	if err != nil {
		writeError(w, err)
		return
	}
	reveal := req.Reveal
	if len(reveal) == 0 {
		reveal = defaultReveal(rec.Side)
	}
	g, err := game.New(rec.ID, rec.Puzzle, reveal, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	me := currentUser(r)
	if me != nil {
		g.Owner = me.ID
	} else {
		g.Owner = s.ensureAnonID(w, r)
	}
	desc, err := ring.DescribeSolved(g.Solved, g.Reveal)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.games.Save(r.Context(), g); err != nil {
		writeError(w, err)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if me != nil {
		_, err = s.db.ExecContext(r.Context(), `INSERT INTO games (id, puzzle_id, user_id, started_at, status, attempts)
		                     VALUES (?,?,?,?,?,0)`, g.ID, rec.ID, g.Owner, now, game.StatePlaying)
	} else {
		_, err = s.db.ExecContext(r.Context(), `INSERT INTO games (id, puzzle_id, anonymous_id, started_at, status, attempts)
		                     VALUES (?,?,?,?,?,0)`, g.ID, rec.ID, g.Owner, now, game.StatePlaying)
	}
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}

	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, PuzzleID: rec.ID, MaxAttempts: g.MaxAttempts, Description: desc})
}

// pickPuzzle loads id, or a random stored puzzle of the daily side.
func (s *Server) pickPuzzle(r *http.Request, id string) (store.Record, error) {
	if id != "" {
		return s.puzzles.Get(r.Context(), id)
	}
	side := s.cfg.Daily.Side
	n, err := s.puzzles.Count(r.Context(), side)
	if err != nil {
		return store.Record{}, err
	}
	if n == 0 {
		return store.Record{}, store.ErrNotFound
	}
	return s.puzzles.ByIndex(r.Context(), side, randomIndex(n))
}

// checkReq/Res payloads for POST /game/check.
type checkReq struct {
	GameID  string   `json:"gameId"`
	Letters []string `json:"letters"`
}
type checkRes struct {
	Marks    []game.Mark `json:"marks"`
	State    string      `json:"state"` // "playing" | "won" | "lost"
	Attempts int         `json:"attempts"`
}

// handleCheck applies a check to an in-memory game, persists progress,
// and (if finished) updates user stats in a best-effort transaction.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}
	g, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	// Other players' games look missing.
	if !g.OwnedBy(callerIDs(r)...) {
		writeError(w, store.ErrNotFound)
		return
	}
	marks, state, err := g.Check(req.Letters)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.games.Save(r.Context(), g); err != nil {
		writeError(w, err)
		return
	}
	s.recordProgress(w, r, g)

	writeJSON(w, http.StatusOK, checkRes{Marks: marks, State: state, Attempts: g.Attempts})
}

// recordProgress updates the games row and, for finished games of a
// signed-in user, their stats. Failures are logged, never returned.
func (s *Server) recordProgress(w http.ResponseWriter, r *http.Request, g *game.Game) {
	me := currentUser(r)
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET attempts=? WHERE id=? AND `+ownerClause, g.Attempts, g.ID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update attempts")
	}
	if g.Finished {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			g.State(), time.Now().UTC().Format(time.RFC3339), g.ID, ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := bumpStats(tx, me.ID, g.Won); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit progress")
	}
}
