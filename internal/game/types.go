// internal/game/types.go
//
// Core type definitions for solving a ring puzzle.
// Defines:
//   - Mark: per-cell result of a check (hit/miss/empty).
//   - Game: state for a single in-progress or finished solve.

package game

import "github.com/robalobadob/ringram/internal/ring"

// Mark represents the evaluation result for a single cell of a check.
// Possible values:
//   - "hit":   the cell holds the solution letter.
//   - "miss":  the cell holds some other letter.
//   - "empty": the cell was left blank.
type Mark string

const (
	MarkHit   Mark = "hit"
	MarkMiss  Mark = "miss"
	MarkEmpty Mark = "empty"
)

// States reported by Check.
const (
	StatePlaying = "playing"
	StateWon     = "won"
	StateLost    = "lost"
)

// Game holds the state of one solve of a stored puzzle.
type Game struct {
	ID          string    // Unique game identifier (random hex string).
	PuzzleID    string    // Catalogue id of the puzzle being solved.
	Owner       string    // User or anonymous player id that started the game.
	Solved      ring.Grid // The solution grid.
	Reveal      []int     // Cells shown to the player from the start.
	MaxAttempts int       // Number of checks allowed; 0 means unlimited.
	Attempts    int       // Checks made so far.
	Finished    bool      // True once the game is over (won or lost).
	Won         bool      // True if the game was finished with a win.
}
