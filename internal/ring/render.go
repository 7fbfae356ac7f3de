// internal/ring/render.go
//
// Plain-text rendering of a grid, optionally framed by its metrics:
//
//	  6 2 5 6
//	9 B I R D 3
//	0 O     O 6
//	5 R     V 2
//	5 N O S E 4
//	  6 3 1 5
//
// Blanks print as "-". Every number is right-aligned to its row or column;
// when a metric needs two digits the letter columns widen to match.

package ring

import (
	"fmt"
	"strconv"
	"strings"
)

const blankMark = "-"

// Render pretty-prints g. Pass nil metrics for the bare grid.
func Render(g Grid, m *Metrics) (string, error) {
	s, err := shapeOf(g)
	if err != nil {
		return "", err
	}
	n := s.Side()
	if m != nil {
		if err := checkMetrics(m, n); err != nil {
			return "", err
		}
	}

	cellW := 1
	if m != nil {
		cellW = max(digits(m.DotsTop), digits(m.DashesBottom))
	}
	cell := func(v string) string {
		if v == Blank {
			v = blankMark
		}
		return fmt.Sprintf("%*s", cellW, v)
	}
	line := func(vals []string) string {
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = cell(v)
		}
		return strings.Join(parts, " ")
	}
	// Middle rows keep only their edge cells; the gap spans the n-2 missing
	// cells plus their separators.
	gap := strings.Repeat(" ", n*cellW+(n-1)-2*cellW)

	body := make([]string, n)
	for r, row := range g {
		if s.IsEdgeRow(r) {
			body[r] = line(row)
		} else {
			body[r] = cell(row[0]) + gap + cell(row[1])
		}
	}
	if m == nil {
		return strings.Join(body, "\n"), nil
	}

	leftW, rightW := digits(m.DotsLeft), digits(m.DashesRight)
	frame := func(vals []int) string {
		cells := make([]string, len(vals))
		for i, v := range vals {
			cells[i] = strconv.Itoa(v)
		}
		return strings.Repeat(" ", leftW+1) + line(cells) + strings.Repeat(" ", rightW+1)
	}
	out := make([]string, 0, n+2)
	out = append(out, frame(m.DotsTop))
	for r := range body {
		out = append(out, fmt.Sprintf("%*d %s %*d", leftW, m.DotsLeft[r], body[r], rightW, m.DashesRight[r]))
	}
	out = append(out, frame(m.DashesBottom))
	return strings.Join(out, "\n"), nil
}

func checkMetrics(m *Metrics, n int) error {
	for name, vals := range map[string][]int{
		"dots-top":      m.DotsTop,
		"dots-left":     m.DotsLeft,
		"dashes-right":  m.DashesRight,
		"dashes-bottom": m.DashesBottom,
	} {
		if len(vals) != n {
			return fmt.Errorf("%w: %s has %d entries, want %d", ErrShape, name, len(vals), n)
		}
	}
	return nil
}

// digits is the widest decimal width among vals (at least 1).
func digits(vals []int) int {
	w := 1
	for _, v := range vals {
		w = max(w, len(strconv.Itoa(v)))
	}
	return w
}
