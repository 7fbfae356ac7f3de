package game_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/ringram/internal/game"
	"github.com/robalobadob/ringram/internal/ring"
)

var bird = ring.Puzzle{"BIRD", "BORN", "DOVE", "NOSE"}

// solution is the flat form of bird: B I R D O O R V N O S E.
func solution() []string { return strings.Split("BIRDOORVNOSE", "") }

func TestNewGame(t *testing.T) {
	g, err := game.New("p1", bird, []int{1, 12}, 0)
	require.NoError(t, err)
	assert.Len(t, g.ID, 16)
	assert.Equal(t, "p1", g.PuzzleID)
	assert.Equal(t, 6, g.MaxAttempts)
	assert.Equal(t, game.StatePlaying, g.State())
	assert.Equal(t, ring.Grid{{"B", "", "", ""}, {"", ""}, {"", ""}, {"", "", "", "E"}}, g.Board())

	_, err = game.New("p1", bird, []int{13}, 0)
	assert.ErrorIs(t, err, ring.ErrRevealRange)
	_, err = game.New("p1", ring.Puzzle{"AB", "AB", "BA", "BA"}, nil, 0)
	assert.ErrorIs(t, err, ring.ErrShape)
}

func TestOwnedBy(t *testing.T) {
	g, err := game.New("p1", bird, nil, 0)
	require.NoError(t, err)
	assert.False(t, g.OwnedBy("u1"), "no owner")

	g.Owner = "anon-1"
	assert.True(t, g.OwnedBy("u1", "anon-1"))
	assert.False(t, g.OwnedBy("u1", ""))
	assert.False(t, g.OwnedBy())
}

func TestScore(t *testing.T) {
	solved, err := ring.WordsToSolved(bird)
	require.NoError(t, err)

	letters := solution()
	letters[0] = "b"
	letters[1] = ""
	letters[2] = "X"
	marks, err := game.Score(solved, letters)
	require.NoError(t, err)
	assert.Equal(t, game.MarkHit, marks[0])
	assert.Equal(t, game.MarkEmpty, marks[1])
	assert.Equal(t, game.MarkMiss, marks[2])
	assert.Equal(t, game.MarkHit, marks[11])
	assert.False(t, game.AllHit(marks))

	_, err = game.Score(solved, letters[:11])
	assert.ErrorIs(t, err, game.ErrBadLetters)
	letters[3] = "DD"
	_, err = game.Score(solved, letters)
	assert.ErrorIs(t, err, game.ErrBadLetters)
}

func TestCheckWin(t *testing.T) {
	g, err := game.New("p1", bird, nil, 3)
	require.NoError(t, err)

	wrong := solution()
	wrong[5] = "A"
	_, state, err := g.Check(wrong)
	require.NoError(t, err)
	assert.Equal(t, game.StatePlaying, state)

	marks, state, err := g.Check(solution())
	require.NoError(t, err)
	assert.Equal(t, game.StateWon, state)
	assert.True(t, game.AllHit(marks))
	assert.Equal(t, 2, g.Attempts)

	_, _, err = g.Check(solution())
	assert.ErrorIs(t, err, game.ErrFinished)
}

func TestCheckLoss(t *testing.T) {
	g, err := game.New("p1", bird, nil, 2)
	require.NoError(t, err)
	blank := make([]string, 12)
	_, state, err := g.Check(blank)
	require.NoError(t, err)
	assert.Equal(t, game.StatePlaying, state)
	_, state, err = g.Check(blank)
	require.NoError(t, err)
	assert.Equal(t, game.StateLost, state)
	assert.True(t, g.Finished)
	assert.False(t, g.Won)

	// A rejected check does not use an attempt.
	g2, _ := game.New("p1", bird, nil, 2)
	_, _, err = g2.Check([]string{"B"})
	assert.Error(t, err)
	assert.Zero(t, g2.Attempts)
}
