package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/ringram/assets"
	"github.com/robalobadob/ringram/internal/catalog"
	"github.com/robalobadob/ringram/internal/database"
	"github.com/robalobadob/ringram/internal/puzzleio"
	"github.com/robalobadob/ringram/internal/ring"
	"github.com/robalobadob/ringram/internal/store"
	"github.com/robalobadob/ringram/internal/words"
)

type generateFlags struct {
	side    int
	dict    string
	out     string
	repeats bool
	workers int
	seed    [4]string
	db      string
	limit   int
	reused  bool
}

func newGenerateCmd() *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write every connected puzzle of a dictionary as CSV",
		Long: "Generate searches the dictionary for every (top, left, right, bottom) tuple\n" +
			"whose corners line up. Fixed words narrow the search. With --db the\n" +
			"result is ranked, filtered for reused words and stored in SQLite.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.side, "side", ring.MaxSide, "word length (3 or 4)")
	fl.StringVar(&f.dict, "dict", "", "dictionary file, one word per line (default: embedded list)")
	fl.StringVarP(&f.out, "out", "o", "", "CSV output file (default: stdout)")
	fl.BoolVar(&f.repeats, "repeats", false, "allow a word to appear twice in one puzzle")
	fl.IntVar(&f.workers, "workers", 4, "top words searched concurrently")
	fl.StringVar(&f.seed[0], "top", "", "fix the top word")
	fl.StringVar(&f.seed[1], "left", "", "fix the left word")
	fl.StringVar(&f.seed[2], "right", "", "fix the right word")
	fl.StringVar(&f.seed[3], "bottom", "", "fix the bottom word")
	fl.StringVar(&f.db, "db", "", "also store the ranked catalogue in this SQLite file")
	fl.IntVar(&f.limit, "limit", 0, "with --db, store at most this many puzzles (0 = all)")
	fl.BoolVar(&f.reused, "keep-reused", false, "with --db, keep puzzles that reuse a better puzzle's words")
	return cmd
}

func runGenerate(cmd *cobra.Command, f generateFlags) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	dictionary, err := loadDictionary(f.dict, f.side)
	if err != nil {
		return err
	}

	opts := ring.DefaultGenerateOptions()
	opts.Side = f.side
	opts.AllowRepeats = f.repeats
	opts.Workers = f.workers
	for i, w := range f.seed {
		opts.Seed[i] = strings.TrimSpace(w)
	}
	puzzles, err := ring.Generate(ctx, dictionary, opts)
	if err != nil {
		return err
	}
	logger.Info().Int("side", f.side).Int("words", len(dictionary)).Int("puzzles", len(puzzles)).Msg("generated")

	var w io.Writer = cmd.OutOrStdout()
	if f.out != "" {
		file, err := os.Create(f.out)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	if err := puzzleio.WriteCSV(w, puzzles); err != nil {
		return err
	}

	if f.db == "" {
		return nil
	}
	ranked, err := catalog.Rank(puzzles, catalog.Options{Limit: f.limit, KeepReused: f.reused})
	if err != nil {
		return err
	}
	db, err := database.OpenMigrated(ctx, f.db, assets.Migrations())
	if err != nil {
		return err
	}
	defer db.Close()
	n, err := catalog.Save(ctx, store.NewSQLitePuzzles(db), ranked)
	if err != nil {
		return err
	}
	logger.Info().Str("db", f.db).Int("stored", n).Msg("catalogue saved")
	return nil
}

// loadDictionary reads side-letter words from path, or the embedded list.
func loadDictionary(path string, side int) ([]string, error) {
	var (
		d   *words.Dictionary
		err error
	)
	if path != "" {
		d, err = words.ReadFile(path)
	} else {
		d, err = words.Load(nil)
	}
	if err != nil {
		return nil, err
	}
	list := d.Words(side)
	if len(list) == 0 {
		return nil, fmt.Errorf("no %d-letter words in dictionary", side)
	}
	return list, nil
}
