package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/ringram/internal/puzzleio"
	"github.com/robalobadob/ringram/internal/ring"
)

func newRankCmd() *cobra.Command {
	var (
		input  string
		words  []string
		top    int
		reused bool
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the best puzzles by distinct letters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var puzzles []ring.Puzzle
			switch {
			case input != "":
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				if puzzles, err = puzzleio.ReadCSV(f); err != nil {
					return err
				}
			case len(words) > 0:
				p, err := puzzleFromFlag(words)
				if err != nil {
					return err
				}
				puzzles = []ring.Puzzle{p}
			default:
				return errors.New("one of --input or --words is required")
			}

			ranked, err := ring.RankByUniqueLetters(puzzles)
			if err != nil {
				return err
			}
			if !reused {
				ranked = ring.SkipUsedWords(ranked)
			}
			if top > 0 && len(ranked) > top {
				ranked = ranked[:top]
			}
			out := cmd.OutOrStdout()
			for i, r := range ranked {
				fmt.Fprintf(out, "%d. %d\n%s\n", i+1, r.Score, strings.Join(r.Puzzle.Words(), ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file of puzzles (top,left,right,bottom per line)")
	cmd.Flags().StringSliceVarP(&words, "words", "w", nil, "a single puzzle: top,left,right,bottom")
	cmd.Flags().IntVar(&top, "top", 10, "number of puzzles to print (0 = all)")
	cmd.Flags().BoolVar(&reused, "keep-reused", false, "keep puzzles that reuse a better puzzle's words")
	cmd.MarkFlagsMutuallyExclusive("input", "words")
	return cmd
}
