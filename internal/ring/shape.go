// internal/ring/shape.go
//
// Shape describes one of the two supported ring topologies.
//
//	side 4           side 3
//	B I R D          C A T
//	O     O          O   O
//	R     V          W O N
//	N O S E
//
// First and last rows are full; every middle row holds only its two edge
// cells. Everything size-specific (row lengths, flat length, slice bounds)
// lives here so the codec, converter, metrics and renderer share one source.

package ring

import "fmt"

// Supported side lengths.
const (
	MinSide = 3
	MaxSide = 4
)

// Shape is an immutable ring layout descriptor. Obtain one via ShapeForSide
// or ShapeForFlat; the zero value is not usable.
type Shape struct {
	side    int
	rowLens []int
	bounds  [][2]int // [start, end) of each row in the flat sequence
	flatLen int
}

var shapes = map[int]Shape{
	3: newShape(3),
	4: newShape(4),
}

func newShape(side int) Shape {
	s := Shape{side: side}
	start := 0
	for r := 0; r < side; r++ {
		n := 2
		if r == 0 || r == side-1 {
			n = side
		}
		s.rowLens = append(s.rowLens, n)
		s.bounds = append(s.bounds, [2]int{start, start + n})
		start += n
	}
	s.flatLen = start
	return s
}

// ShapeForSide returns the shape for a side length of 3 or 4.
func ShapeForSide(side int) (Shape, error) {
	s, ok := shapes[side]
	if !ok {
		return Shape{}, fmt.Errorf("%w: side %d (want %d or %d)", ErrShape, side, MinSide, MaxSide)
	}
	return s, nil
}

// ShapeForFlat returns the shape whose flat length is n (8 or 12).
func ShapeForFlat(n int) (Shape, error) {
	for _, s := range shapes {
		if s.flatLen == n {
			return s, nil
		}
	}
	return Shape{}, fmt.Errorf("%w: flat length %d (want 8 or 12)", ErrShape, n)
}

// shapeOf identifies the shape of a nested grid, checking every row length.
func shapeOf(g Grid) (Shape, error) {
	s, ok := shapes[len(g)]
	if !ok {
		return Shape{}, fmt.Errorf("%w: %d rows", ErrShape, len(g))
	}
	for r, row := range g {
		if len(row) != s.rowLens[r] {
			return Shape{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrShape, r, len(row), s.rowLens[r])
		}
	}
	return s, nil
}

// Side is the number of rows (and columns) of the ring.
func (s Shape) Side() int { return s.side }

// FlatLen is the number of cells: 12 for side 4, 8 for side 3.
func (s Shape) FlatLen() int { return s.flatLen }

// RowLen is the number of cells stored in row r.
func (s Shape) RowLen(r int) int { return s.rowLens[r] }

// Bounds returns the [start, end) slice bounds of row r in the flat sequence.
func (s Shape) Bounds(r int) (start, end int) { return s.bounds[r][0], s.bounds[r][1] }

// IsEdgeRow reports whether r is the first or last row.
func (s Shape) IsEdgeRow(r int) bool { return r == 0 || r == s.side-1 }
