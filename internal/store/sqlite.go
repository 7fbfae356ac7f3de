// internal/store/sqlite.go
//
// SQLite-backed Puzzles (table "puzzles", see assets/sql/001_init.sql).
// Insertion order is the table's rowid order.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/ringram/internal/ring"
)

type sqlitePuzzles struct{ db *sql.DB }

// NewSQLitePuzzles wraps an already migrated database.
func NewSQLitePuzzles(db *sql.DB) Puzzles { return &sqlitePuzzles{db: db} }

const puzzleColumns = `id, side, top, left_word, right_word, bottom, unique_letters, created_at`

func (s *sqlitePuzzles) Save(ctx context.Context, p ring.Puzzle) (Record, error) {
	rec, err := NewRecord(p)
	if err != nil {
		return Record{}, err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO puzzles (`+puzzleColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Side, p[ring.Top], p[ring.Left], p[ring.Right], p[ring.Bottom],
		rec.UniqueLetters, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("store: insert puzzle: %w", err)
	}
	// Either our row or the one that was already there.
	row := s.db.QueryRowContext(ctx, `
        SELECT `+puzzleColumns+` FROM puzzles
        WHERE top=? AND left_word=? AND right_word=? AND bottom=?`,
		p[ring.Top], p[ring.Left], p[ring.Right], p[ring.Bottom])
	return scanRecord(row)
}

func (s *sqlitePuzzles) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+puzzleColumns+` FROM puzzles WHERE id=?`, id)
	return scanRecord(row)
}

func (s *sqlitePuzzles) List(ctx context.Context, side, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+puzzleColumns+` FROM puzzles
        WHERE (?=0 OR side=?)
        ORDER BY rowid
        LIMIT ?`, side, side, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list puzzles: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqlitePuzzles) Count(ctx context.Context, side int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM puzzles WHERE (?=0 OR side=?)`, side, side).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("store: count puzzles: %w", err)
	}
	return n, nil
}

func (s *sqlitePuzzles) ByIndex(ctx context.Context, side, i int) (Record, error) {
	if i < 0 {
		return Record{}, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, `
        SELECT `+puzzleColumns+` FROM puzzles
        WHERE side=?
        ORDER BY rowid
        LIMIT 1 OFFSET ?`, side, i)
	return scanRecord(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		r       Record
		p       ring.Puzzle
		created string
	)
	err := row.Scan(&r.ID, &r.Side, &p[ring.Top], &p[ring.Left], &p[ring.Right], &p[ring.Bottom],
		&r.UniqueLetters, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("store: scan puzzle: %w", err)
	}
	r.Puzzle = p
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return r, nil
}
