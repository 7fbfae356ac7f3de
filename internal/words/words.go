// internal/words/words.go
//
// Dictionary management for puzzle generation and validation.
//
// Responsibilities:
//   - Load one-word-per-line dictionaries from files or the embedded defaults.
//   - Normalise to uppercase; keep alphabetic 3- and 4-letter words only.
//   - Keep first-seen order (the generator's output order follows it).
//   - Provide membership checks and per-side word lists.
//
// Loading behavior (Load):
//  1. For each supported side, if a path is configured (WORDS_FILE_3,
//     WORDS_FILE_4), read that file.
//  2. Otherwise fall back to assets/words/words_N.txt.
//
// A side with no words is an error: neither generation nor the daily
// puzzle can work without it.

package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/robalobadob/ringram/assets"
	"github.com/robalobadob/ringram/internal/ring"
)

// Dictionary is an immutable, uppercase word list split by length.
type Dictionary struct {
	bySide map[int][]string
	set    map[string]struct{}
}

// New builds a Dictionary from raw words. Words are trimmed and uppercased;
// blanks, non-alphabetic entries and lengths other than 3 or 4 are dropped,
// and duplicates keep their first position.
func New(raw []string) *Dictionary {
	d := &Dictionary{bySide: make(map[int][]string), set: make(map[string]struct{})}
	for _, w := range raw {
		d.add(w)
	}
	return d
}

func (d *Dictionary) add(raw string) {
	w := strings.ToUpper(strings.TrimSpace(raw))
	if len(w) < ring.MinSide || len(w) > ring.MaxSide || !isAlpha(w) {
		return
	}
	if _, ok := d.set[w]; ok {
		return
	}
	d.set[w] = struct{}{}
	d.bySide[len(w)] = append(d.bySide[len(w)], w)
}

// Parse reads one word per line from r. Lines starting with '#' are comments.
func Parse(r io.Reader) (*Dictionary, error) {
	d := New(nil)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		d.add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: scan: %w", err)
	}
	return d, nil
}

// ReadFile parses the dictionary at path.
func ReadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Load builds the dictionary for every supported side. files maps a side
// to an optional path; sides without a path use the embedded list.
func Load(files map[int]string) (*Dictionary, error) {
	d := New(nil)
	for side := ring.MinSide; side <= ring.MaxSide; side++ {
		var list []string
		if path := files[side]; path != "" {
			fd, err := ReadFile(path)
			if err != nil {
				return nil, err
			}
			list = fd.Words(side)
		} else {
			raw, err := assets.WordList(side)
			if err != nil {
				return nil, fmt.Errorf("words: embedded list for side %d: %w", side, err)
			}
			list = raw
		}
		before := d.Len()
		for _, w := range list {
			if len(strings.TrimSpace(w)) == side {
				d.add(w)
			}
		}
		if d.Len() == before {
			return nil, fmt.Errorf("words: no %d-letter words loaded", side)
		}
	}
	return d, nil
}

// Contains reports whether w (any case) is in the dictionary.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[strings.ToUpper(w)]
	return ok
}

// Words returns the side-letter words in load order. The slice is shared;
// callers must not modify it.
func (d *Dictionary) Words(side int) []string { return d.bySide[side] }

// Len is the total number of words.
func (d *Dictionary) Len() int { return len(d.set) }

// Stats returns word counts keyed by length.
func (d *Dictionary) Stats() map[int]int {
	out := make(map[int]int, len(d.bySide))
	for side, list := range d.bySide {
		out[side] = len(list)
	}
	return out
}

// Sides lists the word lengths present, ascending.
func (d *Dictionary) Sides() []int {
	out := make([]int, 0, len(d.bySide))
	for side := range d.bySide {
		out = append(out, side)
	}
	sort.Ints(out)
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
