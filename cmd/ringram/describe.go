package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/ringram/internal/puzzleio"
	"github.com/robalobadob/ringram/internal/ring"
)

func newDescribeCmd() *cobra.Command {
	var (
		words   []string
		reveal  []int
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print a puzzle's YAML description",
		Long: "Describe prints the Morse metrics of the solved grid and the letters left\n" +
			"visible by --reveal (1-based flat indices; -1 reveals all, 0 none).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := puzzleFromFlag(words)
			if err != nil {
				return err
			}
			d, err := ring.Describe(p.Words(), reveal)
			if err != nil {
				return err
			}
			if verbose {
				text, err := ring.Render(d.Letters, &d.Metrics)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), text)
			}
			return puzzleio.WriteDescriptions(cmd.OutOrStdout(), []ring.Description{d})
		},
	}
	cmd.Flags().StringSliceVarP(&words, "words", "w", nil, "top,left,right,bottom")
	cmd.Flags().IntSliceVarP(&reveal, "reveal", "r", nil, "cells to reveal")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also render the grid to stderr")
	_ = cmd.MarkFlagRequired("words")
	_ = cmd.MarkFlagRequired("reveal")
	return cmd
}
