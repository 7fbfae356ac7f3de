package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/ringram/internal/config"
	"github.com/robalobadob/ringram/internal/ring"
)

func newRootCmd() *cobra.Command {
	var logCfg config.LogConfig

	root := &cobra.Command{
		Use:           "ringram",
		Short:         "Generate, rank and describe ring word puzzles",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := config.SetupLogger(logCfg, cmd.ErrOrStderr())
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}
	root.PersistentFlags().StringVar(&logCfg.Level, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logCfg.Format, "log-format", "pretty", "log format (json or pretty)")

	root.AddCommand(
		newGenerateCmd(),
		newRankCmd(),
		newDescribeCmd(),
		newRenderCmd(),
	)
	return root
}

// puzzleFromFlag turns --words into a validated puzzle. Words are trimmed
// but not case-folded.
func puzzleFromFlag(words []string) (ring.Puzzle, error) {
	trimmed := make([]string, len(words))
	for i, w := range words {
		trimmed[i] = strings.TrimSpace(w)
	}
	if err := ring.ValidatePuzzleWords(trimmed); err != nil {
		return ring.Puzzle{}, fmt.Errorf("--words: %w", err)
	}
	return ring.NewPuzzle(trimmed)
}
