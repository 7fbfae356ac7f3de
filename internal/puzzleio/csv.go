// internal/puzzleio/csv.go
//
// Generated-puzzle files: one tuple per line, TOP,LEFT,RIGHT,BOTTOM.

package puzzleio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/ringram/internal/ring"
)

// WriteCSV writes one line per puzzle.
func WriteCSV(w io.Writer, puzzles []ring.Puzzle) error {
	cw := csv.NewWriter(w)
	for _, p := range puzzles {
		if err := cw.Write(p.Words()); err != nil {
			return fmt.Errorf("puzzleio: write %s: %w", p, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads tuples written by WriteCSV. Fields are trimmed; blank
// lines are skipped. Tuples are not validated here.
func ReadCSV(r io.Reader) ([]ring.Puzzle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(ring.Puzzle{})
	cr.TrimLeadingSpace = true

	var out []ring.Puzzle
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("puzzleio: read: %w", err)
		}
		var p ring.Puzzle
		for i, f := range rec {
			p[i] = strings.TrimSpace(f)
		}
		out = append(out, p)
	}
}
