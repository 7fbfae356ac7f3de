// internal/ring/errors.go
//
// Sentinel errors for the ring puzzle model.
// Callers match them with errors.Is; returned errors wrap them with context.

package ring

import (
	"errors"
	"fmt"
)

var (
	// ErrShape indicates a grid or word tuple whose shape is not a supported ring.
	ErrShape = errors.New("ring: malformed grid shape")
	// ErrOutOfRange indicates a row or column index outside the grid.
	ErrOutOfRange = errors.New("ring: index out of range")
	// ErrLookup indicates a cell with no Morse mapping (blank, lowercase, multi-letter).
	ErrLookup = errors.New("ring: no morse code for letter")
	// ErrValidation is wrapped by every rule-specific validation error below.
	ErrValidation = errors.New("ring: validation failed")
)

// Rule-specific validation errors. Each wraps ErrValidation.
var (
	ErrWordCount       = fmt.Errorf("%w: there must be exactly 4 words", ErrValidation)
	ErrNotAlphabetic   = fmt.Errorf("%w: all words must be alphabetic", ErrValidation)
	ErrWrongLength     = fmt.Errorf("%w: all words must be exactly the required length", ErrValidation)
	ErrMixedLengths    = fmt.Errorf("%w: all words must be the same length", ErrValidation)
	ErrNotUppercase    = fmt.Errorf("%w: all words must be all caps", ErrValidation)
	ErrNotInDictionary = fmt.Errorf("%w: all words must be in the word list", ErrValidation)
	ErrTopology        = fmt.Errorf("%w: words must form a valid puzzle", ErrValidation)
	ErrRevealRange     = fmt.Errorf("%w: reveal index out of range", ErrValidation)
)
