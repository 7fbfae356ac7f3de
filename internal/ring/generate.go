// internal/ring/generate.go
//
// Exhaustive generator for connected word tuples.
//
// The search fixes the top word, then narrows each remaining position with
// the corner constraints before descending:
//   - left:   starts with top's first letter
//   - right:  starts with top's last letter
//   - bottom: starts with left's last letter and ends with right's last letter
//
// Candidates come from prebuilt indexes (by first letter, and by first+last
// letter), so each level only visits words that already satisfy every
// constraint known at that depth. Worst case stays O(D^4) but real
// dictionaries prune to a tiny fraction of that.
//
// Subtrees under different top words are independent; with Workers > 1 the
// top loop fans out over an errgroup and shard results are reattached in top
// order, so output is identical to the sequential run.

package ring

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// GenerateOptions tunes Generate.
type GenerateOptions struct {
	// Side is the word length, 3 or 4.
	Side int
	// AllowRepeats keeps tuples that use the same word twice.
	AllowRepeats bool
	// Seed fixes words at their positions; empty positions are free.
	Seed Puzzle
	// Workers bounds the number of top words searched concurrently.
	// Values below 2 run sequentially.
	Workers int
}

// DefaultGenerateOptions returns options for side-4 puzzles without repeats,
// searched sequentially.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Side: MaxSide, Workers: 1}
}

type wordSet map[string]struct{}

func (s wordSet) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

type ends [2]byte

type generator struct {
	opts    GenerateOptions
	byFirst map[byte][]string
	byEnds  map[ends][]string
}

// Generate returns every connected tuple that can be built from dictionary,
// in discovery order (top-word-major, then left, right, bottom, each in
// dictionary order). Words whose length differs from opts.Side are ignored.
// Seed words are validated against the dictionary before searching.
func Generate(ctx context.Context, dictionary []string, opts GenerateOptions) ([]Puzzle, error) {
	if _, err := ShapeForSide(opts.Side); err != nil {
		return nil, err
	}

	seen := make(wordSet, len(dictionary))
	words := make([]string, 0, len(dictionary))
	for _, w := range dictionary {
		if len(w) != opts.Side || seen.Contains(w) {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	var seeds []string
	for _, w := range opts.Seed {
		if w != "" {
			seeds = append(seeds, w)
		}
	}
	if err := ValidateWords(seeds, opts.Side, seen); err != nil {
		return nil, fmt.Errorf("seed words: %w", err)
	}

	gen := &generator{
		opts:    opts,
		byFirst: make(map[byte][]string),
		byEnds:  make(map[ends][]string),
	}
	for _, w := range words {
		gen.byFirst[w[0]] = append(gen.byFirst[w[0]], w)
		k := ends{w[0], w[len(w)-1]}
		gen.byEnds[k] = append(gen.byEnds[k], w)
	}

	tops := pick(words, opts.Seed[Top])
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("side", opts.Side).Int("words", len(words)).Int("tops", len(tops)).Msg("generate: start")

	results := make([][]Puzzle, len(tops))
	if opts.Workers < 2 {
		for i, top := range tops {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = gen.searchTop(top)
			logger.Debug().Str("top", top).Int("found", len(results[i])).Msg("generate: top searched")
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i, top := range tops {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = gen.searchTop(top)
				logger.Debug().Str("top", top).Int("found", len(results[i])).Msg("generate: top searched")
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]Puzzle, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	logger.Debug().Int("puzzles", len(out)).Msg("generate: done")
	return out, nil
}

func (gen *generator) searchTop(top string) []Puzzle {
	var found []Puzzle
	seed := gen.opts.Seed
	last := len(top) - 1
	lefts := pick(gen.byFirst[top[0]], seed[Left])
	rights := pick(gen.byFirst[top[last]], seed[Right])
	for _, left := range lefts {
		for _, right := range rights {
			bottoms := pick(gen.byEnds[ends{left[last], right[last]}], seed[Bottom])
			for _, bottom := range bottoms {
				p := Puzzle{top, left, right, bottom}
				if !gen.opts.AllowRepeats && p.HasRepeats() {
					continue
				}
				found = append(found, p)
			}
		}
	}
	return found
}

// pick narrows candidates to the fixed word, if any.
func pick(candidates []string, fixed string) []string {
	if fixed == "" {
		return candidates
	}
	for _, w := range candidates {
		if w == fixed {
			return []string{fixed}
		}
	}
	return nil
}
