// internal/puzzleio/yaml.go
//
// Puzzle description documents: a YAML list of mappings with the keys
// dots-top, dots-left, dashes-right, dashes-bottom and letters, all in
// flow style, e.g.
//
//	- dots-top: [6, 2, 5, 6]
//	  dots-left: [9, 0, 5, 5]
//	  dashes-right: [3, 6, 2, 4]
//	  dashes-bottom: [6, 3, 1, 5]
//	  letters: [[B, "", "", ""], ["", ""], ["", ""], ["", "", "", E]]

package puzzleio

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/ringram/internal/ring"
)

// WriteDescriptions encodes ds as one YAML document.
func WriteDescriptions(w io.Writer, ds []ring.Description) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("puzzleio: encode yaml: %w", err)
	}
	return enc.Close()
}

// ReadDescriptions decodes a document written by WriteDescriptions and
// checks each letters grid has a ring shape.
func ReadDescriptions(r io.Reader) ([]ring.Description, error) {
	var ds []ring.Description
	if err := yaml.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("puzzleio: decode yaml: %w", err)
	}
	for i, d := range ds {
		if _, err := d.Letters.Shape(); err != nil {
			return nil, fmt.Errorf("puzzleio: description %d: %w", i, err)
		}
	}
	return ds, nil
}
