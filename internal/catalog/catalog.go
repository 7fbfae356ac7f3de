// internal/catalog/catalog.go
//
// Builds the puzzle catalogue from a dictionary: generate every connected
// tuple, rank by distinct letters, keep only puzzles whose words were not
// used by a better one, and store the best.
//
// The server calls Fill at startup for an empty store; the CLI calls Build
// to write files.

package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/robalobadob/ringram/internal/ring"
	"github.com/robalobadob/ringram/internal/store"
)

// Options tunes Build and Fill.
type Options struct {
	Side    int
	Workers int
	// Limit caps the number of puzzles returned or stored; <= 0 keeps all.
	Limit int
	// KeepReused disables the skip-used-words filter.
	KeepReused bool
}

// Build generates and ranks puzzles from dictionary.
func Build(ctx context.Context, dictionary []string, opts Options) ([]ring.Ranked, error) {
	gopts := ring.DefaultGenerateOptions()
	gopts.Side = opts.Side
	gopts.Workers = opts.Workers

	puzzles, err := ring.Generate(ctx, dictionary, gopts)
	if err != nil {
		return nil, fmt.Errorf("catalog: generate: %w", err)
	}
	ranked, err := Rank(puzzles, opts)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().
		Int("side", opts.Side).
		Int("generated", len(puzzles)).
		Int("kept", len(ranked)).
		Msg("catalog built")
	return ranked, nil
}

// Rank scores puzzles by distinct letters, drops puzzles that reuse a
// better puzzle's words unless opts.KeepReused, and applies opts.Limit.
func Rank(puzzles []ring.Puzzle, opts Options) ([]ring.Ranked, error) {
	ranked, err := ring.RankByUniqueLetters(puzzles)
	if err != nil {
		return nil, fmt.Errorf("catalog: rank: %w", err)
	}
	if !opts.KeepReused {
		ranked = ring.SkipUsedWords(ranked)
	}
	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	return ranked, nil
}

// Fill stores Build's output in st and returns how many records were new.
// A store that already holds puzzles of the side is left alone.
func Fill(ctx context.Context, st store.Puzzles, dictionary []string, opts Options) (int, error) {
	have, err := st.Count(ctx, opts.Side)
	if err != nil {
		return 0, err
	}
	if have > 0 {
		return 0, nil
	}
	ranked, err := Build(ctx, dictionary, opts)
	if err != nil {
		return 0, err
	}
	return Save(ctx, st, ranked)
}

// Save stores every ranked puzzle in order and returns the number stored.
func Save(ctx context.Context, st store.Puzzles, ranked []ring.Ranked) (int, error) {
	for i, r := range ranked {
		if _, err := st.Save(ctx, r.Puzzle); err != nil {
			return i, fmt.Errorf("catalog: save %s: %w", r.Puzzle, err)
		}
	}
	return len(ranked), nil
}
