// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes three endpoints under /daily:
//   - GET  /daily             → today's puzzle; starts or reuses the caller's session
//   - POST /daily/solve       → check letters for today's session
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=YYYY-MM-DD)
//
// Each player can finish once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on win.
// The puzzle is picked by HMAC(salt, date) over the stored puzzles of the
// configured side and pinned for the rest of the date.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ringram/internal/daily"
	"github.com/robalobadob/ringram/internal/game"
	"github.com/robalobadob/ringram/internal/ring"
	"github.com/robalobadob/ringram/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions and their games
}

// dailySession holds transient in-memory state for an in-progress daily solve.
type dailySession struct {
	Game  *game.Game
	Date  string
	Start time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		sessions: make(map[string]*dailySession),
	}
	r.Get("/daily", dd.handleToday)
	r.Post("/daily/solve", dd.handleSolve)
	r.Get("/daily/leaderboard", dd.handleLeaderboard)
}

// today returns today's date key and puzzle. The first call of a date
// picks HMAC(salt, date) over the current catalogue and pins it; later calls
// reuse the pin however much the catalogue has grown.
func (d *dailyServer) today(r *http.Request) (string, store.Record, error) {
	ctx := r.Context()
	now := time.Now().UTC()
	date := daily.DateKey(now)
	side := d.srv.cfg.Daily.Side

	id, ok, err := d.store.PinnedPuzzle(ctx, date, side)
	if err != nil {
		return date, store.Record{}, err
	}
	if ok {
		rec, err := d.srv.puzzles.Get(ctx, id)
		if !errors.Is(err, store.ErrNotFound) {
			return date, rec, err
		}
		// The pinned puzzle is gone (in-memory catalogue after a restart).
		log.Warn().Str("date", date).Str("puzzleId", id).Msg("pinned daily puzzle missing, repinning")
	}

	n, err := d.srv.puzzles.Count(ctx, side)
	if err != nil {
		return date, store.Record{}, err
	}
	if n == 0 {
		return date, store.Record{}, store.ErrNotFound
	}
	rec, err := d.srv.puzzles.ByIndex(ctx, side, daily.PuzzleIndex(now, d.srv.cfg.Daily.Salt, n))
	if err != nil {
		return date, store.Record{}, err
	}
	if ok {
		return date, rec, d.store.RepinPuzzle(ctx, date, side, rec.ID)
	}
	pinned, err := d.store.PinPuzzle(ctx, date, side, rec.ID)
	if err != nil || pinned == rec.ID {
		return date, rec, err
	}
	rec, err = d.srv.puzzles.Get(ctx, pinned)
	return date, rec, err
}

// playerID returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := currentUser(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// GET /daily

type todayRes struct {
	Date        string           `json:"date"`
	PuzzleID    string           `json:"puzzleId"`
	GameID      string           `json:"gameId,omitempty"`
	Played      bool             `json:"played"`
	MaxAttempts int              `json:"maxAttempts"`
	Description ring.Description `json:"description"`
}

// handleToday returns today's puzzle and creates or reuses a session.
// A player with a DB row for today gets Played=true and no session.
func (d *dailyServer) handleToday(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)
	date, rec, err := d.today(r)
	if err != nil {
		writeError(w, err)
		return
	}
	solved, err := ring.WordsToSolved(rec.Puzzle)
	if err != nil {
		writeError(w, err)
		return
	}
	desc, err := ring.DescribeSolved(solved, d.srv.cfg.Daily.Reveal)
	if err != nil {
		writeError(w, err)
		return
	}
	res := todayRes{Date: date, PuzzleID: rec.ID, Description: desc}

	played, err := d.store.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		writeError(w, err)
		return
	}
	if played {
		res.Played = true
		writeJSON(w, http.StatusOK, res)
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	sess, ok := d.sessions[key]
	if !ok {
		g, err := game.New(rec.ID, rec.Puzzle, d.srv.cfg.Daily.Reveal, 0)
		if err != nil {
			writeError(w, err)
			return
		}
		sess = &dailySession{Game: g, Date: date, Start: time.Now()}
		d.sessions[key] = sess
	}
	res.GameID = sess.Game.ID
	res.MaxAttempts = sess.Game.MaxAttempts
	res.Played = sess.Game.Finished
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// POST /daily/solve

type solveRes struct {
	Marks    []game.Mark `json:"marks"`
	State    string      `json:"state"` // playing | won | lost | locked
	Attempts int         `json:"attempts"`
}

// handleSolve validates and applies a check for today's session.
// A win is persisted; a finished session answers "locked".
func (d *dailyServer) handleSolve(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)

	var req checkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_request"})
		return
	}

	date := daily.DateKey(time.Now().UTC())
	key := uid + "|" + date

	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok || sess.Game.ID != req.GameID {
		d.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no_session"})
		return
	}
	g := sess.Game
	if g.Finished {
		attempts := g.Attempts
		d.mu.Unlock()
		writeJSON(w, http.StatusOK, solveRes{Marks: []game.Mark{}, State: "locked", Attempts: attempts})
		return
	}
	marks, state, err := g.Check(req.Letters)
	attempts := g.Attempts
	d.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	if state == game.StateWon {
		_, err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:    uid,
			Date:      date,
			PuzzleID:  g.PuzzleID,
			Attempts:  attempts,
			ElapsedMs: int(time.Since(sess.Start).Milliseconds()),
		})
		if err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	writeJSON(w, http.StatusOK, solveRes{Marks: marks, State: state, Attempts: attempts})
}

// -----------------------------------------------------------------------------
// GET /daily/leaderboard

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	} else if _, err := daily.ParseDateKey(date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date"})
		return
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
