package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/ringram/internal/ring"
)

func newRenderCmd() *cobra.Command {
	var (
		words   []string
		reveal  []int
		metrics bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a puzzle grid as text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := puzzleFromFlag(words)
			if err != nil {
				return err
			}
			d, err := ring.Describe(p.Words(), reveal)
			if err != nil {
				return err
			}
			var m *ring.Metrics
			if metrics {
				m = &d.Metrics
			}
			text, err := ring.Render(d.Letters, m)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&words, "words", "w", nil, "top,left,right,bottom")
	cmd.Flags().IntSliceVarP(&reveal, "reveal", "r", []int{ring.RevealAll}, "cells to reveal")
	cmd.Flags().BoolVarP(&metrics, "metrics", "m", false, "frame the grid with its metrics")
	_ = cmd.MarkFlagRequired("words")
	return cmd
}
