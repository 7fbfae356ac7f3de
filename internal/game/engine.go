// internal/game/engine.go
//
// Game engine for a single ring puzzle solve.
// Responsibilities:
//   - Create games from a stored puzzle (solution grid + revealed cells).
//   - Validate and apply checks (flat letter list, one entry per ring cell).
//   - Mark each cell hit/miss/empty against the solution.
//   - Track state transitions: playing → won/lost.
//
// Package-level defaults are kept here for clarity.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/ringram/internal/ring"
)

const defaultMaxAttempts = 6

var (
	// ErrFinished is returned by Check once the game is over.
	ErrFinished = errors.New("game finished")
	// ErrBadLetters is returned for a letter list of the wrong size or with
	// entries that are not single letters.
	ErrBadLetters = errors.New("invalid letters")
)

// New constructs a game for puzzle p stored under puzzleID.
// maxAttempts <= 0 selects the default of 6.
func New(puzzleID string, p ring.Puzzle, reveal []int, maxAttempts int) (*Game, error) {
	solved, err := ring.WordsToSolved(p)
	if err != nil {
		return nil, err
	}
	s, _ := solved.Shape()
	if err := ring.ValidateReveal(reveal, s); err != nil {
		return nil, err
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Game{
		ID:          randomID(),
		PuzzleID:    puzzleID,
		Solved:      solved,
		Reveal:      append([]int(nil), reveal...),
		MaxAttempts: maxAttempts,
	}, nil
}

// Board returns the grid the player starts from.
func (g *Game) Board() ring.Grid {
	b, _ := ring.Conceal(g.Solved, g.Reveal)
	return b
}

// Check scores letters, mutating the game state.
// Returns: the per-cell marks, the new state ("playing"/"won"/"lost"), or an error.
//
// State transitions:
//   - If every cell is a hit → Finished = true, Won = true.
//   - Else if attempts reach MaxAttempts → Finished = true (loss).
func (g *Game) Check(letters []string) ([]Mark, string, error) {
	if g.Finished {
		return nil, g.State(), ErrFinished
	}
	marks, err := Score(g.Solved, letters)
	if err != nil {
		return nil, g.State(), err
	}
	g.Attempts++
	if AllHit(marks) {
		g.Finished, g.Won = true, true
	} else if g.MaxAttempts > 0 && g.Attempts >= g.MaxAttempts {
		g.Finished = true
	}
	return marks, g.State(), nil
}

// OwnedBy reports whether one of ids is the game's owner.
func (g *Game) OwnedBy(ids ...string) bool {
	for _, id := range ids {
		if id != "" && id == g.Owner {
			return true
		}
	}
	return false
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Score compares a flat letter list against a solved grid without touching
// any game state. Letters are case-insensitive; "" marks an empty cell.
func Score(solved ring.Grid, letters []string) ([]Mark, error) {
	want, err := ring.Flatten(solved)
	if err != nil {
		return nil, err
	}
	if len(letters) != len(want) {
		return nil, fmt.Errorf("%w: want %d cells, got %d", ErrBadLetters, len(want), len(letters))
	}
	marks := make([]Mark, len(want))
	for i, l := range letters {
		l = strings.ToUpper(strings.TrimSpace(l))
		switch {
		case l == ring.Blank:
			marks[i] = MarkEmpty
		case len(l) != 1 || l[0] < 'A' || l[0] > 'Z':
			return nil, fmt.Errorf("%w: cell %d is %q", ErrBadLetters, i+1, letters[i])
		case l == want[i]:
			marks[i] = MarkHit
		default:
			marks[i] = MarkMiss
		}
	}
	return marks, nil
}

// AllHit returns true if all marks are MarkHit.
func AllHit(m []Mark) bool {
	for _, x := range m {
		if x != MarkHit {
			return false
		}
	}
	return len(m) > 0
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
