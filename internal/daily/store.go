// internal/daily/store.go
//
// SQLite persistence for the daily puzzle.
//   - daily_puzzles: the puzzle pinned for each date and side.
//   - daily_results: one row per player per date; a second insert is ignored.

package daily

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// Result is one player's solve of the daily puzzle.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	PuzzleID  string `json:"puzzleId"`
	Attempts  int    `json:"attempts"`
	ElapsedMs int    `json:"elapsedMs"`
}

// LBRow is a leaderboard line.
type LBRow struct {
	UserID    string `json:"userId"    db:"user_id"`
	Attempts  int    `json:"attempts"  db:"attempts"`
	ElapsedMs int    `json:"elapsedMs" db:"elapsed_ms"`
}

// Store reads and writes daily_results.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// PinnedPuzzle returns the puzzle id pinned for date and side. ok is false
// when the date has no pin yet.
func (s *Store) PinnedPuzzle(ctx context.Context, date string, side int) (id string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT puzzle_id FROM daily_puzzles WHERE date=? AND side=?`, date, side,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("daily: pinned puzzle: %w", err)
	}
	return id, true, nil
}

// PinPuzzle pins id for date and side unless a pin exists, and returns the
// pinned id. Concurrent first requests all get the winner's id.
func (s *Store) PinPuzzle(ctx context.Context, date string, side int, id string) (string, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_puzzles (date, side, puzzle_id) VALUES (?, ?, ?)`,
		date, side, id,
	); err != nil {
		return "", fmt.Errorf("daily: pin puzzle: %w", err)
	}
	pinned, _, err := s.PinnedPuzzle(ctx, date, side)
	return pinned, err
}

// RepinPuzzle replaces the pin for date and side.
func (s *Store) RepinPuzzle(ctx context.Context, date string, side int, id string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO daily_puzzles (date, side, puzzle_id) VALUES (?, ?, ?)`,
		date, side, id,
	); err != nil {
		return fmt.Errorf("daily: repin puzzle: %w", err)
	}
	return nil
}

// AlreadyPlayed reports whether userID has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	if err != nil {
		return false, fmt.Errorf("daily: already played: %w", err)
	}
	return cnt > 0, nil
}

// InsertResult records r. It reports false if a row for the same user and
// date already existed.
func (s *Store) InsertResult(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results (user_id, date, puzzle_id, attempts, elapsed_ms)
        VALUES (?, ?, ?, ?, ?)`,
		r.UserID, r.Date, r.PuzzleID, r.Attempts, r.ElapsedMs,
	)
	if err != nil {
		return false, fmt.Errorf("daily: insert result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ClaimAnon moves an anonymous player's results to userID, skipping dates
// the user already has.
func (s *Store) ClaimAnon(ctx context.Context, anonID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
        UPDATE OR IGNORE daily_results SET user_id=? WHERE user_id=?`, userID, anonID)
	if err != nil {
		return fmt.Errorf("daily: claim: %w", err)
	}
	return nil
}

// Leaderboard returns the fastest solves for date; attempts, then
// submission time, break ties. Default limit is 20.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	out := make([]LBRow, 0, limit)
	err := sqlscan.Select(ctx, s.db, &out, `
        SELECT user_id, attempts, elapsed_ms
        FROM daily_results
        WHERE date=?
        ORDER BY elapsed_ms ASC, attempts ASC, created_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("daily: leaderboard: %w", err)
	}
	return out, nil
}
