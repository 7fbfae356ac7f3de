// Package ring models the ring word puzzle: four words laid out around the
// border of a square grid so that they share their corner letters.
//
// What
//
//   - Grid and Shape: the ring layout (row lengths [4,2,2,4] for side 4,
//     [3,2,3] for side 3) with Flatten/Inflate, Row and Col access.
//   - Puzzle: the (top, left, right, bottom) word tuple, WordsToSolved and
//     SolvedToWords, and the corner-topology check.
//   - Conceal: blank every cell except a 1-based reveal set (-1 reveals all).
//   - Metrics: Morse dot counts per top column and left row, dash counts per
//     right row and bottom column, always taken from the solved grid.
//   - Generate: exhaustive search over a dictionary for connected tuples,
//     optionally seeded with fixed words and fanned out over top words.
//   - Render, Describe and Rank: text output, the publishable description
//     and ranking by distinct letters.
//
// Errors
//
//	Shape violations wrap ErrShape, index errors ErrOutOfRange, Morse misses
//	ErrLookup. Every validation rule has its own sentinel, and all of them
//	wrap ErrValidation so callers may test either level with errors.Is.
//
// Determinism
//
//	Generate returns tuples in dictionary order of (top, left, right, bottom)
//	regardless of the worker count.
package ring
