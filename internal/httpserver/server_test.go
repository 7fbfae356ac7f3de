package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/ringram/assets"
	"github.com/robalobadob/ringram/internal/config"
	"github.com/robalobadob/ringram/internal/database"
	"github.com/robalobadob/ringram/internal/httpserver"
	"github.com/robalobadob/ringram/internal/ring"
	"github.com/robalobadob/ringram/internal/store"
	"github.com/robalobadob/ringram/internal/words"
)

var (
	bird = ring.Puzzle{"BIRD", "BORN", "DOVE", "NOSE"}
	bard = ring.Puzzle{"BARD", "BEAD", "DEAN", "DAWN"}
	cat  = ring.Puzzle{"CAT", "COW", "TON", "WON"}
)

// ---------------------------------------------------------------------------
// harness

type harness struct {
	t       *testing.T
	url     string
	client  *http.Client
	puzzles store.Puzzles
	ids     map[ring.Puzzle]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: 5175, ClientOrigin: "http://localhost:5173", RequestTimeout: 5 * time.Second},
		Database: config.DatabaseConfig{Path: database.Memory, PuzzleStore: "memory"},
		Auth:     config.AuthConfig{JWTSecret: "test-secret", JWTExpiresDays: 1, CookieName: "ringram_token", Env: "test"},
		Daily:    config.DailyConfig{Salt: "salt", Side: 4, RevealRaw: "1,12"},
		Seed:     config.SeedConfig{},
		Log:      config.LogConfig{Level: "info"},
	}
	require.NoError(t, cfg.Validate())

	ctx := context.Background()
	db, err := database.OpenMigrated(ctx, database.Memory, assets.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dict := words.New([]string{
		"BIRD", "BORN", "DOVE", "NOSE", "BARD", "BEAD", "DEAN", "DAWN",
		"BEND", "DOSE", "CAT", "COW", "TON", "WON",
	})
	puzzles := store.NewMemoryPuzzles()
	ids := map[ring.Puzzle]string{}
	for _, p := range []ring.Puzzle{bird, bard, cat} {
		rec, err := puzzles.Save(ctx, p)
		require.NoError(t, err)
		ids[p] = rec.ID
	}

	ts := httptest.NewServer(httpserver.New(cfg, dict, puzzles, db).Handler())
	t.Cleanup(ts.Close)
	return &harness{t: t, url: ts.URL, client: newClient(t), puzzles: puzzles, ids: ids}
}

func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (h *harness) do(c *http.Client, method, path string, body any) (*http.Response, []byte) {
	h.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, h.url+path, rd)
	require.NoError(h.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.Do(req)
	require.NoError(h.t, err)
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	require.NoError(h.t, err)
	return res, out
}

func (h *harness) get(path string) (*http.Response, []byte) {
	return h.do(h.client, http.MethodGet, path, nil)
}

func (h *harness) post(path string, body any) (*http.Response, []byte) {
	return h.do(h.client, http.MethodPost, path, body)
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func flat(t *testing.T, p ring.Puzzle) []string {
	t.Helper()
	g, err := ring.WordsToSolved(p)
	require.NoError(t, err)
	f, err := ring.Flatten(g)
	require.NoError(t, err)
	return f
}

func (h *harness) signup(name string) {
	h.t.Helper()
	res, body := h.post("/auth/signup", map[string]string{"username": name, "password": "password123"})
	require.Equal(h.t, http.StatusCreated, res.StatusCode, string(body))
}

// ---------------------------------------------------------------------------
// diagnostics

func TestDiagnostics(t *testing.T) {
	h := newHarness(t)

	res, body := h.get("/health")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "http://localhost:5173", res.Header.Get("Access-Control-Allow-Origin"))

	res, body = h.get("/debug/words")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"words":{"3":4,"4":10},"puzzles":3}`, string(body))

	res, body = h.get("/nope")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, string(body), `"not_found"`)

	res, _ = h.do(h.client, http.MethodOptions, "/puzzles", nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}

// ---------------------------------------------------------------------------
// catalogue

func TestListPuzzles(t *testing.T) {
	h := newHarness(t)

	type listRes struct {
		Total   int              `json:"total"`
		Puzzles []map[string]any `json:"puzzles"`
	}
	res, body := h.get("/puzzles")
	require.Equal(t, http.StatusOK, res.StatusCode)
	all := decode[listRes](t, body)
	assert.Equal(t, 3, all.Total)
	require.Len(t, all.Puzzles, 3)
	assert.Equal(t, h.ids[bird], all.Puzzles[0]["id"])
	assert.NotContains(t, string(body), "BIRD", "words stay hidden")

	res, body = h.get("/puzzles?side=3&limit=10")
	require.Equal(t, http.StatusOK, res.StatusCode)
	three := decode[listRes](t, body)
	assert.Equal(t, 1, three.Total)

	res, _ = h.get("/puzzles?side=5")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res, _ = h.get("/puzzles?limit=x")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetPuzzle(t *testing.T) {
	h := newHarness(t)
	id := h.ids[bird]

	type getRes struct {
		ID          string           `json:"id"`
		Side        int              `json:"side"`
		Reveal      []int            `json:"reveal"`
		Description ring.Description `json:"description"`
	}
	res, body := h.get("/puzzles/" + id)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	got := decode[getRes](t, body)
	assert.Equal(t, []int{1, 12}, got.Reveal)
	assert.Equal(t, []int{6, 2, 5, 6}, got.Description.DotsTop)
	assert.Equal(t, []int{9, 0, 5, 5}, got.Description.DotsLeft)
	assert.Equal(t, []int{3, 6, 2, 4}, got.Description.DashesRight)
	assert.Equal(t, []int{6, 3, 1, 5}, got.Description.DashesBottom)
	assert.Equal(t, ring.Grid{{"B", "", "", ""}, {"", ""}, {"", ""}, {"", "", "", "E"}}, got.Description.Letters)

	res, body = h.get("/puzzles/" + id + "?reveal=1,3,6,10,13")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, string(body))

	res, body = h.get("/puzzles/" + id + "?reveal=none")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, ring.Grid{{"", "", "", ""}, {"", ""}, {"", ""}, {"", "", "", ""}}, decode[getRes](t, body).Description.Letters)

	res, _ = h.get("/puzzles/" + id + "?reveal=x")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Side 3 defaults to cells 1 and 8.
	res, body = h.get("/puzzles/" + h.ids[cat])
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []int{1, 8}, decode[getRes](t, body).Reveal)

	res, _ = h.get("/puzzles/does-not-exist")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestPuzzleText(t *testing.T) {
	h := newHarness(t)
	id := h.ids[bird]

	res, body := h.get("/puzzles/" + id + "/text?metrics=1")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "text/plain"))
	assert.Equal(t, "  6 2 5 6  \n9 B - - - 3\n0 -     - 6\n5 -     - 2\n5 - - - E 4\n  6 3 1 5  \n", string(body))

	res, body = h.get("/puzzles/" + id + "/text?reveal=all")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "B I R D\nO     O\nR     V\nN O S E\n", string(body))
}

func TestPuzzleCheck(t *testing.T) {
	h := newHarness(t)
	id := h.ids[bird]

	type res struct {
		Marks  []string `json:"marks"`
		Solved bool     `json:"solved"`
	}
	r, body := h.post("/puzzles/"+id+"/check", map[string]any{"letters": flat(t, bird)})
	require.Equal(t, http.StatusOK, r.StatusCode, string(body))
	assert.True(t, decode[res](t, body).Solved)

	letters := flat(t, bird)
	letters[1] = ""
	letters[2] = "q"
	r, body = h.post("/puzzles/"+id+"/check", map[string]any{"letters": letters})
	require.Equal(t, http.StatusOK, r.StatusCode)
	got := decode[res](t, body)
	assert.False(t, got.Solved)
	assert.Equal(t, []string{"hit", "empty", "miss"}, got.Marks[:3])

	r, _ = h.post("/puzzles/"+id+"/check", map[string]any{"letters": []string{"B"}})
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
}

func TestAddPuzzle(t *testing.T) {
	h := newHarness(t)
	words := map[string]any{"words": []string{"BEND", "BORN", "DOVE", "NOSE"}}

	res, _ := h.post("/puzzles", words)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	h.signup("maker")

	res, body := h.post("/puzzles", map[string]any{"words": []string{"BIRD", "BORN", "DOVE", "HOSE"}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "topology")
	assert.Contains(t, string(body), "invalid")

	// BARN is not in the test dictionary.
	res, _ = h.post("/puzzles", map[string]any{"words": []string{"BARN", "BEAD", "NODE", "DOVE"}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "dictionary")

	res, body = h.post("/puzzles", map[string]any{"words": []string{"BARD", "BEAD", "DOSE", "DAWN"}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, string(body))

	res, body = h.post("/puzzles", map[string]any{"words": []string{"BIRD", "BEAD", "DEAN", "DAWN"}})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))
	added := decode[map[string]any](t, body)
	assert.Equal(t, []any{"BIRD", "BEAD", "DEAN", "DAWN"}, added["words"])

	n, err := h.puzzles.Count(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

// ---------------------------------------------------------------------------
// games

func TestGameFlow(t *testing.T) {
	h := newHarness(t)
	h.signup("player")

	type newRes struct {
		GameID      string           `json:"gameId"`
		PuzzleID    string           `json:"puzzleId"`
		MaxAttempts int              `json:"maxAttempts"`
		Description ring.Description `json:"description"`
	}
	res, body := h.post("/game/new", map[string]any{"puzzleId": h.ids[bird]})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	ng := decode[newRes](t, body)
	assert.Equal(t, h.ids[bird], ng.PuzzleID)
	assert.Equal(t, 6, ng.MaxAttempts)

	type checkRes struct {
		State    string `json:"state"`
		Attempts int    `json:"attempts"`
	}
	wrong := flat(t, bird)
	wrong[4] = "Z"
	res, body = h.post("/game/check", map[string]any{"gameId": ng.GameID, "letters": wrong})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Equal(t, checkRes{State: "playing", Attempts: 1}, decode[checkRes](t, body))

	res, body = h.post("/game/check", map[string]any{"gameId": ng.GameID, "letters": flat(t, bird)})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, checkRes{State: "won", Attempts: 2}, decode[checkRes](t, body))

	res, _ = h.post("/game/check", map[string]any{"gameId": ng.GameID, "letters": flat(t, bird)})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, body = h.get("/games/mine")
	require.Equal(t, http.StatusOK, res.StatusCode)
	mine := decode[[]map[string]any](t, body)
	require.Len(t, mine, 1)
	assert.Equal(t, "won", mine[0]["status"])
	assert.Equal(t, float64(2), mine[0]["attempts"])

	res, body = h.get("/stats/me")
	require.Equal(t, http.StatusOK, res.StatusCode)
	stats := decode[map[string]any](t, body)
	assert.Equal(t, float64(1), stats["gamesPlayed"])
	assert.Equal(t, float64(1), stats["wins"])
	assert.Equal(t, float64(1), stats["streak"])
}

func TestGameRandomPuzzleAndErrors(t *testing.T) {
	h := newHarness(t)

	res, body := h.post("/game/new", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	ng := decode[map[string]any](t, body)
	assert.Contains(t, []string{h.ids[bird], h.ids[bard]}, ng["puzzleId"], "random pick uses the daily side")

	res, _ = h.post("/game/new", map[string]any{"puzzleId": "missing"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = h.post("/game/check", map[string]any{"gameId": "missing", "letters": []string{}})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGameCheckOnlyByOwner(t *testing.T) {
	h := newHarness(t)

	res, body := h.post("/game/new", map[string]any{"puzzleId": h.ids[bird]})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	gameID := decode[map[string]any](t, body)["gameId"]

	other := newClient(t)
	res, body = h.do(other, http.MethodPost, "/auth/signup", map[string]string{"username": "other", "password": "password123"})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))

	res, _ = h.do(other, http.MethodPost, "/game/check", map[string]any{"gameId": gameID, "letters": flat(t, bird)})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res, _ = h.do(newClient(t), http.MethodPost, "/game/check", map[string]any{"gameId": gameID, "letters": flat(t, bird)})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = h.do(other, http.MethodGet, "/stats/me", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(0), decode[map[string]any](t, body)["gamesPlayed"])

	// The owner's game is untouched.
	res, body = h.post("/game/check", map[string]any{"gameId": gameID, "letters": flat(t, bird)})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Equal(t, "won", decode[map[string]any](t, body)["state"])

	// Signing up mid-game keeps the game playable.
	res, body = h.post("/game/new", map[string]any{"puzzleId": h.ids[bard]})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	gameID = decode[map[string]any](t, body)["gameId"]
	h.signup("owner")
	res, body = h.post("/game/check", map[string]any{"gameId": gameID, "letters": flat(t, bard)})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
}

// ---------------------------------------------------------------------------
// daily

func TestDailyFlow(t *testing.T) {
	h := newHarness(t)

	type todayRes struct {
		Date        string           `json:"date"`
		PuzzleID    string           `json:"puzzleId"`
		GameID      string           `json:"gameId"`
		Played      bool             `json:"played"`
		Description ring.Description `json:"description"`
	}
	res, body := h.get("/daily")
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	today := decode[todayRes](t, body)
	require.NotEmpty(t, today.GameID)
	assert.False(t, today.Played)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), today.Date)

	rec, err := h.puzzles.Get(context.Background(), today.PuzzleID)
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Side)

	// Same player, same session.
	res, body = h.get("/daily")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, today.GameID, decode[todayRes](t, body).GameID)

	type solveRes struct {
		State    string `json:"state"`
		Attempts int    `json:"attempts"`
	}
	res, _ = h.post("/daily/solve", map[string]any{"gameId": "other", "letters": flat(t, rec.Puzzle)})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, body = h.post("/daily/solve", map[string]any{"gameId": today.GameID, "letters": flat(t, rec.Puzzle)})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Equal(t, solveRes{State: "won", Attempts: 1}, decode[solveRes](t, body))

	res, body = h.post("/daily/solve", map[string]any{"gameId": today.GameID, "letters": flat(t, rec.Puzzle)})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "locked", decode[solveRes](t, body).State)

	res, body = h.get("/daily")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, decode[todayRes](t, body).Played)

	res, body = h.get("/daily/leaderboard")
	require.Equal(t, http.StatusOK, res.StatusCode)
	lb := decode[map[string]any](t, body)
	assert.Len(t, lb["top"], 1)

	// Another player gets the same puzzle.
	other := newClient(t)
	res, body = h.do(other, http.MethodGet, "/daily", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, today.PuzzleID, decode[todayRes](t, body).PuzzleID)

	res, _ = h.get("/daily/leaderboard?date=yesterday")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDailyPuzzleSurvivesCatalogueGrowth(t *testing.T) {
	h := newHarness(t)

	res, body := h.get("/daily")
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	first := decode[map[string]any](t, body)["puzzleId"]

	h.signup("curator")
	for _, words := range [][]string{
		{"BIRD", "BEAD", "DEAN", "DAWN"},
		{"BORN", "BIRD", "NOSE", "DOVE"},
		{"BEAD", "BARD", "DAWN", "DEAN"},
	} {
		res, body = h.post("/puzzles", map[string]any{"words": words})
		require.Equal(t, http.StatusCreated, res.StatusCode, string(body))
	}
	n, err := h.puzzles.Count(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	// A player who never opened today's puzzle still gets the same one.
	res, body = h.do(newClient(t), http.MethodGet, "/daily", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Equal(t, first, decode[map[string]any](t, body)["puzzleId"])
}

// ---------------------------------------------------------------------------
// auth

func TestAuth(t *testing.T) {
	h := newHarness(t)

	res, _ := h.get("/auth/me")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := h.post("/auth/signup", map[string]string{"username": "ab", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, string(body))

	h.signup("alice")

	res, body = h.get("/auth/me")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "alice", decode[map[string]any](t, body)["username"])

	res, _ = h.post("/auth/signup", map[string]string{"username": "ALICE", "password": "password123"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, _ = h.post("/auth/logout", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = h.get("/auth/me")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = h.post("/auth/login", map[string]string{"username": "alice", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = h.post("/auth/login", map[string]string{"username": "alice", "password": "password123"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = h.get("/auth/me")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// A bearer token signed with another secret is rejected.
	req, err := http.NewRequest(http.MethodGet, h.url+"/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = r.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
}

func TestAnonymousHistoryIsClaimed(t *testing.T) {
	h := newHarness(t)

	res, body := h.post("/game/new", map[string]any{"puzzleId": h.ids[bird]})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	h.signup("late")
	res, body = h.get("/games/mine")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, body), 1)
}
