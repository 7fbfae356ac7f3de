// internal/store/store.go
//
// Persistence interfaces.
//   - Puzzles: the catalogue of generated ring puzzles (memory or SQLite).
//   - Games:   in-progress solve sessions (memory only).
//
// Catalogue records keep their insertion order; ByIndex addresses them by
// position within a side.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/ringram/internal/game"
	"github.com/robalobadob/ringram/internal/ring"
)

// ErrNotFound is returned when an id or index has no record.
var ErrNotFound = errors.New("store: not found")

// Record is a stored puzzle.
type Record struct {
	ID            string      `json:"id"`
	Side          int         `json:"side"`
	Puzzle        ring.Puzzle `json:"-"`
	UniqueLetters int         `json:"uniqueLetters"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Puzzles is the puzzle catalogue.
type Puzzles interface {
	// Save stores p and returns its record. Saving a tuple that is already
	// stored returns the existing record.
	Save(ctx context.Context, p ring.Puzzle) (Record, error)

	// Get retrieves a puzzle by id.
	Get(ctx context.Context, id string) (Record, error)

	// List returns up to limit puzzles of the given side in insertion order.
	// side 0 means every side; limit <= 0 means no limit.
	List(ctx context.Context, side, limit int) ([]Record, error)

	// Count returns the number of puzzles of the given side (0 = all).
	Count(ctx context.Context, side int) (int, error)

	// ByIndex returns the i-th puzzle (0-based, insertion order) of a side.
	ByIndex(ctx context.Context, side, i int) (Record, error)
}

// Games holds solve sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Games interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID.
	Get(ctx context.Context, id string) (*game.Game, error)
}

// NewRecord validates p and builds a record with a fresh id.
func NewRecord(p ring.Puzzle) (Record, error) {
	if err := ring.ValidatePuzzleWords(p.Words()); err != nil {
		return Record{}, err
	}
	solved, err := ring.WordsToSolved(p)
	if err != nil {
		return Record{}, err
	}
	side, _ := p.Side()
	return Record{
		ID:            uuid.NewString(),
		Side:          side,
		Puzzle:        p,
		UniqueLetters: ring.UniqueLetters(solved),
		CreatedAt:     time.Now().UTC(),
	}, nil
}
