// internal/ring/validate.go
//
// Validation of caller-supplied words and reveal sets. Each failure names
// the rule it broke through a dedicated sentinel (see errors.go).

package ring

import (
	"fmt"
	"strings"
)

// Lexicon is the dictionary membership check used by validation.
type Lexicon interface {
	Contains(word string) bool
}

// ValidateWords checks seed words for generation: alphabetic, exactly
// length letters, all caps, and present in lex. Rules are applied in that
// order across all words, so the reported rule is the first one broken.
func ValidateWords(words []string, length int, lex Lexicon) error {
	for _, w := range words {
		if !isAlpha(w) {
			return fmt.Errorf("%w: %q", ErrNotAlphabetic, w)
		}
	}
	for _, w := range words {
		if len(w) != length {
			return fmt.Errorf("%w: %q is not %d letters", ErrWrongLength, w, length)
		}
	}
	for _, w := range words {
		if w != strings.ToUpper(w) {
			return fmt.Errorf("%w: %q", ErrNotUppercase, w)
		}
	}
	for _, w := range words {
		if lex == nil || !lex.Contains(w) {
			return fmt.Errorf("%w: %q", ErrNotInDictionary, w)
		}
	}
	return nil
}

// ValidatePuzzleWords checks a complete word tuple: exactly four words,
// alphabetic, of one length, all caps, and forming a connected ring.
func ValidatePuzzleWords(words []string) error {
	if len(words) != 4 {
		return fmt.Errorf("%w: got %d", ErrWordCount, len(words))
	}
	for _, w := range words {
		if !isAlpha(w) {
			return fmt.Errorf("%w: %q", ErrNotAlphabetic, w)
		}
	}
	for _, w := range words[1:] {
		if len(w) != len(words[0]) {
			return fmt.Errorf("%w: %q and %q", ErrMixedLengths, words[0], w)
		}
	}
	for _, w := range words {
		if w != strings.ToUpper(w) {
			return fmt.Errorf("%w: %q", ErrNotUppercase, w)
		}
	}
	p, _ := NewPuzzle(words)
	if !p.Connected() {
		return fmt.Errorf("%w: %s", ErrTopology, p)
	}
	return nil
}

// ValidateReveal checks that every reveal index lies in [-1, FlatLen] for
// the given shape. 0 is accepted and reveals nothing.
func ValidateReveal(reveal []int, s Shape) error {
	for _, i := range reveal {
		if i < RevealAll || i > s.FlatLen() {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrRevealRange, i, RevealAll, s.FlatLen())
		}
	}
	return nil
}

// isAlpha reports whether s is a non-empty run of ASCII letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
