// internal/ring/rank.go
//
// Ranking of generated puzzles. A puzzle with more distinct letters gives
// the solver more to work with, so the score is the number of distinct
// letters on the solved grid.

package ring

import "sort"

// Ranked pairs a puzzle with its score.
type Ranked struct {
	Puzzle Puzzle `json:"puzzle"`
	Score  int    `json:"score"`
}

// UniqueLetters counts the distinct non-blank letters of g.
func UniqueLetters(g Grid) int {
	seen := make(map[string]struct{})
	for _, row := range g {
		for _, c := range row {
			if c != Blank {
				seen[c] = struct{}{}
			}
		}
	}
	return len(seen)
}

// RankByUniqueLetters scores every puzzle and sorts by descending score.
// Ties keep their input order.
func RankByUniqueLetters(puzzles []Puzzle) ([]Ranked, error) {
	out := make([]Ranked, 0, len(puzzles))
	for _, p := range puzzles {
		g, err := WordsToSolved(p)
		if err != nil {
			return nil, err
		}
		out = append(out, Ranked{Puzzle: p, Score: UniqueLetters(g)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// SkipUsedWords walks a ranking and keeps a puzzle only if none of its
// words appeared in a puzzle kept before it.
func SkipUsedWords(ranked []Ranked) []Ranked {
	used := make(map[string]bool)
	var out []Ranked
	for _, r := range ranked {
		fresh := true
		for _, w := range r.Puzzle {
			if used[w] {
				fresh = false
				break
			}
		}
		if !fresh {
			continue
		}
		out = append(out, r)
		for _, w := range r.Puzzle {
			used[w] = true
		}
	}
	return out
}
