// internal/ring/morse.go
//
// Morse dot/dash metrics. Each row and column of a solved grid is encoded
// letter by letter in International Morse; the dot and dash counts of the
// concatenated codes frame the grid as solving hints:
//   - dots-top:      dots per column
//   - dots-left:     dots per row
//   - dashes-right:  dashes per row
//   - dashes-bottom: dashes per column
//
// Metrics must come from the solved grid; blanks have no code and fail
// with ErrLookup.

package ring

import (
	"fmt"
	"strings"
)

var morse = map[string]string{
	"A": ".-", "B": "-...", "C": "-.-.", "D": "-..", "E": ".", "F": "..-.",
	"G": "--.", "H": "....", "I": "..", "J": ".---", "K": "-.-", "L": ".-..",
	"M": "--", "N": "-.", "O": "---", "P": ".--.", "Q": "--.-", "R": ".-.",
	"S": "...", "T": "-", "U": "..-", "V": "...-", "W": ".--", "X": "-..-",
	"Y": "-.--", "Z": "--..",
}

// Metrics holds the four hint sequences, one entry per row or column.
type Metrics struct {
	DotsTop      []int `json:"dots-top"      yaml:"dots-top,flow"`
	DotsLeft     []int `json:"dots-left"     yaml:"dots-left,flow"`
	DashesRight  []int `json:"dashes-right"  yaml:"dashes-right,flow"`
	DashesBottom []int `json:"dashes-bottom" yaml:"dashes-bottom,flow"`
}

// ToMorse maps each single uppercase letter to its Morse code.
func ToMorse(letters []string) ([]string, error) {
	out := make([]string, len(letters))
	for i, l := range letters {
		code, ok := morse[l]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrLookup, l)
		}
		out[i] = code
	}
	return out, nil
}

// CountDots counts the dots in a Morse code string.
func CountDots(code string) int { return strings.Count(code, ".") }

// CountDashes counts the dashes in a Morse code string.
func CountDashes(code string) int { return strings.Count(code, "-") }

// ComputeMetrics derives the dot/dash hints of a solved grid.
func ComputeMetrics(g Grid) (Metrics, error) {
	s, err := shapeOf(g)
	if err != nil {
		return Metrics{}, err
	}
	n := s.Side()
	m := Metrics{
		DotsTop:      make([]int, n),
		DotsLeft:     make([]int, n),
		DashesRight:  make([]int, n),
		DashesBottom: make([]int, n),
	}
	for i := 0; i < n; i++ {
		row, _ := Row(g, i)
		rowCode, err := encodeLine(row)
		if err != nil {
			return Metrics{}, fmt.Errorf("row %d: %w", i, err)
		}
		col, _ := Col(g, i)
		colCode, err := encodeLine(col)
		if err != nil {
			return Metrics{}, fmt.Errorf("column %d: %w", i, err)
		}
		m.DotsTop[i] = CountDots(colCode)
		m.DotsLeft[i] = CountDots(rowCode)
		m.DashesRight[i] = CountDashes(rowCode)
		m.DashesBottom[i] = CountDashes(colCode)
	}
	return m, nil
}

func encodeLine(line []string) (string, error) {
	codes, err := ToMorse(line)
	if err != nil {
		return "", err
	}
	return strings.Join(codes, ""), nil
}
