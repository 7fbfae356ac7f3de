// cmd/ringram
//
// Offline tooling for the ringram puzzle catalogue:
//   generate → every connected tuple of a dictionary as CSV (optionally ranked into SQLite)
//   rank     → best puzzles by distinct letters, skipping reused words
//   describe → YAML description (metrics + concealed letters)
//   render   → plain-text grid

package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
