// internal/ring/grid.go
//
// Grid codec: conversion between the flat cell sequence (top-left to
// bottom-right, left-to-right within a row) and the nested ring grid, plus
// row/column access.

package ring

import "fmt"

// Blank is the cell value of a concealed letter.
const Blank = ""

// Grid is a nested, row-major ring. Middle rows store only their two edge cells.
type Grid [][]string

// Flatten concatenates the rows of g in document order.
func Flatten(g Grid) ([]string, error) {
	s, err := shapeOf(g)
	if err != nil {
		return nil, err
	}
	flat := make([]string, 0, s.FlatLen())
	for _, row := range g {
		flat = append(flat, row...)
	}
	return flat, nil
}

// Inflate splits a flat sequence of 8 or 12 cells into a nested grid.
func Inflate(flat []string) (Grid, error) {
	s, err := ShapeForFlat(len(flat))
	if err != nil {
		return nil, err
	}
	g := make(Grid, s.Side())
	for r := range g {
		start, end := s.Bounds(r)
		g[r] = append([]string(nil), flat[start:end]...)
	}
	return g, nil
}

// Shape returns the shape of g, or ErrShape if g is malformed.
func (g Grid) Shape() (Shape, error) { return shapeOf(g) }

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Row returns row i of g.
func Row(g Grid, i int) ([]string, error) {
	s, err := shapeOf(g)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= s.Side() {
		return nil, fmt.Errorf("%w: row %d (side %d)", ErrOutOfRange, i, s.Side())
	}
	return append([]string(nil), g[i]...), nil
}

// Col returns column i of g. Edge columns have one entry per row; interior
// columns exist only in the first and last rows.
func Col(g Grid, i int) ([]string, error) {
	s, err := shapeOf(g)
	if err != nil {
		return nil, err
	}
	n := s.Side()
	switch {
	case i < 0 || i >= n:
		return nil, fmt.Errorf("%w: column %d (side %d)", ErrOutOfRange, i, n)
	case i == 0:
		col := make([]string, n)
		for r := range g {
			col[r] = g[r][0]
		}
		return col, nil
	case i == n-1:
		col := make([]string, n)
		for r := range g {
			if s.IsEdgeRow(r) {
				col[r] = g[r][len(g[r])-1]
			} else {
				col[r] = g[r][1]
			}
		}
		return col, nil
	default:
		return []string{g[0][i], g[n-1][i]}, nil
	}
}
