// internal/ring/describe.go

package ring

import "fmt"

// Description is the publishable form of a puzzle: the concealed letters
// framed by the metrics of the solved grid.
type Description struct {
	Metrics `yaml:",inline"`
	Letters Grid `json:"letters" yaml:"letters,flow"`
}

// Describe validates words and reveal, then builds the unsolved grid and
// the metrics of the solved one.
func Describe(words []string, reveal []int) (Description, error) {
	if err := ValidatePuzzleWords(words); err != nil {
		return Description{}, fmt.Errorf("%w (words: %v)", err, words)
	}
	p, _ := NewPuzzle(words)
	solved, err := WordsToSolved(p)
	if err != nil {
		return Description{}, err
	}
	s, _ := solved.Shape()
	if err := ValidateReveal(reveal, s); err != nil {
		return Description{}, fmt.Errorf("%w (reveal: %v)", err, reveal)
	}
	return DescribeSolved(solved, reveal)
}

// DescribeSolved conceals an already solved grid and attaches its metrics.
func DescribeSolved(solved Grid, reveal []int) (Description, error) {
	m, err := ComputeMetrics(solved)
	if err != nil {
		return Description{}, err
	}
	unsolved, err := Conceal(solved, reveal)
	if err != nil {
		return Description{}, err
	}
	return Description{Metrics: m, Letters: unsolved}, nil
}
