package daily_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/ringram/assets"
	"github.com/robalobadob/ringram/internal/daily"
	"github.com/robalobadob/ringram/internal/database"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 2024-03-02 05:00 at +10 is still 2024-03-01 in UTC.
	assert.Equal(t, "2024-03-01", daily.DateKey(time.Date(2024, 3, 2, 5, 0, 0, 0, loc)))

	d, err := daily.ParseDateKey("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", daily.DateKey(d))
	_, err = daily.ParseDateKey("03/01/2024")
	assert.Error(t, err)
}

func TestPuzzleIndex(t *testing.T) {
	day := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	later := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)

	a := daily.PuzzleIndex(day, "salt", 1000)
	assert.Equal(t, a, daily.PuzzleIndex(later, "salt", 1000), "same date, same index")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 1000)
	assert.Zero(t, daily.PuzzleIndex(day, "salt", 0))

	// Over a month the index must move around.
	seen := map[int]bool{}
	for i := 0; i < 30; i++ {
		seen[daily.PuzzleIndex(day.AddDate(0, 0, i), "salt", 1000)] = true
	}
	assert.Greater(t, len(seen), 20)
}

func TestPinPuzzle(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenMigrated(ctx, database.Memory, assets.Migrations())
	require.NoError(t, err)
	defer db.Close()
	st := daily.NewStore(db)

	_, ok, err := st.PinnedPuzzle(ctx, "2024-03-01", 4)
	require.NoError(t, err)
	assert.False(t, ok)

	id, err := st.PinPuzzle(ctx, "2024-03-01", 4, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", id)

	// A later pick for the same day loses to the first.
	id, err = st.PinPuzzle(ctx, "2024-03-01", 4, "p2")
	require.NoError(t, err)
	assert.Equal(t, "p1", id)

	// Other sides and dates are independent.
	id, err = st.PinPuzzle(ctx, "2024-03-01", 3, "p3")
	require.NoError(t, err)
	assert.Equal(t, "p3", id)
	id, err = st.PinPuzzle(ctx, "2024-03-02", 4, "p2")
	require.NoError(t, err)
	assert.Equal(t, "p2", id)

	require.NoError(t, st.RepinPuzzle(ctx, "2024-03-01", 4, "p9"))
	id, ok, err = st.PinnedPuzzle(ctx, "2024-03-01", 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "p9", id)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenMigrated(ctx, database.Memory, assets.Migrations())
	require.NoError(t, err)
	defer db.Close()
	st := daily.NewStore(db)

	played, err := st.AlreadyPlayed(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.False(t, played)

	ok, err := st.InsertResult(ctx, daily.Result{UserID: "u1", Date: "2024-03-01", PuzzleID: "p", Attempts: 2, ElapsedMs: 900})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = st.InsertResult(ctx, daily.Result{UserID: "u1", Date: "2024-03-01", PuzzleID: "p", Attempts: 1, ElapsedMs: 10})
	require.NoError(t, err)
	assert.False(t, ok, "one result per user and date")

	_, err = st.InsertResult(ctx, daily.Result{UserID: "u2", Date: "2024-03-01", PuzzleID: "p", Attempts: 1, ElapsedMs: 900})
	require.NoError(t, err)
	_, err = st.InsertResult(ctx, daily.Result{UserID: "u3", Date: "2024-03-01", PuzzleID: "p", Attempts: 4, ElapsedMs: 300})
	require.NoError(t, err)
	_, err = st.InsertResult(ctx, daily.Result{UserID: "u4", Date: "2024-03-02", PuzzleID: "q", Attempts: 1, ElapsedMs: 1})
	require.NoError(t, err)

	played, err = st.AlreadyPlayed(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.True(t, played)

	lb, err := st.Leaderboard(ctx, "2024-03-01", 0)
	require.NoError(t, err)
	assert.Equal(t, []daily.LBRow{
		{UserID: "u3", Attempts: 4, ElapsedMs: 300},
		{UserID: "u2", Attempts: 1, ElapsedMs: 900},
		{UserID: "u1", Attempts: 2, ElapsedMs: 900},
	}, lb)

	lb, err = st.Leaderboard(ctx, "2024-03-01", 1)
	require.NoError(t, err)
	assert.Len(t, lb, 1)
}

func TestClaimAnon(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenMigrated(ctx, database.Memory, assets.Migrations())
	require.NoError(t, err)
	defer db.Close()
	st := daily.NewStore(db)

	_, err = st.InsertResult(ctx, daily.Result{UserID: "anon", Date: "2024-03-01", PuzzleID: "p", Attempts: 1, ElapsedMs: 5})
	require.NoError(t, err)
	_, err = st.InsertResult(ctx, daily.Result{UserID: "anon", Date: "2024-03-02", PuzzleID: "q", Attempts: 1, ElapsedMs: 5})
	require.NoError(t, err)
	_, err = st.InsertResult(ctx, daily.Result{UserID: "user", Date: "2024-03-02", PuzzleID: "q", Attempts: 3, ElapsedMs: 50})
	require.NoError(t, err)

	require.NoError(t, st.ClaimAnon(ctx, "anon", "user"))

	played, err := st.AlreadyPlayed(ctx, "user", "2024-03-01")
	require.NoError(t, err)
	assert.True(t, played)
	lb, err := st.Leaderboard(ctx, "2024-03-02", 0)
	require.NoError(t, err)
	assert.Len(t, lb, 2, "conflicting day stays with the anonymous id")
}
