// internal/ring/puzzle.go
//
// Word/puzzle conversion. A Puzzle is the ordered word tuple
// (top, left, right, bottom); the four words share the ring's corner letters.

package ring

import (
	"fmt"
	"strings"
)

// Positions of the words in a Puzzle.
const (
	Top = iota
	Left
	Right
	Bottom
)

// Puzzle is the ordered word tuple (top, left, right, bottom).
type Puzzle [4]string

// NewPuzzle builds a Puzzle from a 4-element slice.
func NewPuzzle(words []string) (Puzzle, error) {
	var p Puzzle
	if len(words) != len(p) {
		return p, fmt.Errorf("%w: got %d", ErrWordCount, len(words))
	}
	copy(p[:], words)
	return p, nil
}

func (p Puzzle) Top() string    { return p[Top] }
func (p Puzzle) Left() string   { return p[Left] }
func (p Puzzle) Right() string  { return p[Right] }
func (p Puzzle) Bottom() string { return p[Bottom] }

// Words returns the tuple as a slice.
func (p Puzzle) Words() []string { return p[:] }

// String renders the tuple as its CSV line form: TOP,LEFT,RIGHT,BOTTOM.
func (p Puzzle) String() string { return strings.Join(p[:], ",") }

// Connected reports whether the four words share their corner letters:
// top/left first letters, top last/right first, left last/bottom first,
// right last/bottom last. Empty words never connect.
func (p Puzzle) Connected() bool {
	for _, w := range p {
		if w == "" {
			return false
		}
	}
	top, left, right, bottom := p[Top], p[Left], p[Right], p[Bottom]
	return top[0] == left[0] &&
		top[len(top)-1] == right[0] &&
		bottom[0] == left[len(left)-1] &&
		bottom[len(bottom)-1] == right[len(right)-1]
}

// HasRepeats reports whether any word appears more than once.
func (p Puzzle) HasRepeats() bool {
	for i := 0; i < len(p); i++ {
		for j := i + 1; j < len(p); j++ {
			if p[i] == p[j] {
				return true
			}
		}
	}
	return false
}

// Side returns the common word length, or ErrShape if the words are not all
// of length 3 or all of length 4.
func (p Puzzle) Side() (int, error) {
	n := len(p[Top])
	for _, w := range p {
		if len(w) != n {
			return 0, fmt.Errorf("%w: word lengths differ in %s", ErrShape, p)
		}
	}
	if _, err := ShapeForSide(n); err != nil {
		return 0, err
	}
	return n, nil
}

// WordsToSolved lays the words out on a solved grid:
// top fills row 0, bottom fills the last row, and the interior letters of
// left and right fill the edge cells of the middle rows.
func WordsToSolved(p Puzzle) (Grid, error) {
	n, err := p.Side()
	if err != nil {
		return nil, err
	}
	s, _ := ShapeForSide(n)
	flat := make([]string, 0, s.FlatLen())
	flat = append(flat, letters(p[Top])...)
	for r := 1; r < n-1; r++ {
		flat = append(flat, p[Left][r:r+1], p[Right][r:r+1])
	}
	flat = append(flat, letters(p[Bottom])...)
	return Inflate(flat)
}

// SolvedToWords reads the four edges of a solved grid back into a Puzzle.
// Corner letters are read through the shared cells, so the result is
// only meaningful for grids built from a connected tuple.
func SolvedToWords(g Grid) (Puzzle, error) {
	var p Puzzle
	s, err := shapeOf(g)
	if err != nil {
		return p, err
	}
	n := s.Side()
	left, _ := Col(g, 0)
	right, _ := Col(g, n-1)
	p[Top] = strings.Join(g[0], "")
	p[Left] = strings.Join(left, "")
	p[Right] = strings.Join(right, "")
	p[Bottom] = strings.Join(g[n-1], "")
	return p, nil
}

func letters(w string) []string {
	out := make([]string, len(w))
	for i := range w {
		out[i] = w[i : i+1]
	}
	return out
}
