// internal/store/memory.go
//
// In-memory implementations of Puzzles and Games.
// Used for solve sessions always, and for the catalogue in development and
// tests (PUZZLE_STORE=memory).
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing ids.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/ringram/internal/game"
	"github.com/robalobadob/ringram/internal/ring"
)

// memoryPuzzles keeps records in insertion order plus two lookups.
type memoryPuzzles struct {
	mu     sync.RWMutex
	order  []Record
	byID   map[string]int
	byWord map[ring.Puzzle]int
}

// NewMemoryPuzzles constructs an empty in-memory catalogue.
func NewMemoryPuzzles() Puzzles {
	return &memoryPuzzles{byID: make(map[string]int), byWord: make(map[ring.Puzzle]int)}
}

func (m *memoryPuzzles) Save(ctx context.Context, p ring.Puzzle) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.byWord[p]; ok {
		return m.order[i], nil
	}
	rec, err := NewRecord(p)
	if err != nil {
		return Record{}, err
	}
	m.order = append(m.order, rec)
	m.byID[rec.ID] = len(m.order) - 1
	m.byWord[p] = len(m.order) - 1
	return rec, nil
}

func (m *memoryPuzzles) Get(ctx context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i, ok := m.byID[id]; ok {
		return m.order[i], nil
	}
	return Record{}, ErrNotFound
}

func (m *memoryPuzzles) List(ctx context.Context, side, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Record{}
	for _, r := range m.order {
		if limit > 0 && len(out) >= limit {
			break
		}
		if side == 0 || r.Side == side {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryPuzzles) Count(ctx context.Context, side int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if side == 0 {
		return len(m.order), nil
	}
	n := 0
	for _, r := range m.order {
		if r.Side == side {
			n++
		}
	}
	return n, nil
}

func (m *memoryPuzzles) ByIndex(ctx context.Context, side, i int) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i < 0 {
		return Record{}, ErrNotFound
	}
	for _, r := range m.order {
		if r.Side != side {
			continue
		}
		if i == 0 {
			return r, nil
		}
		i--
	}
	return Record{}, ErrNotFound
}

// memoryGames is an in-memory map-based Games implementation.
type memoryGames struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryGames constructs a new in-memory Games store.
func NewMemoryGames() Games {
	return &memoryGames{games: make(map[string]*game.Game)}
}

// Save adds or updates the game in the map.
func (m *memoryGames) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

// Get looks up a game by ID.
func (m *memoryGames) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}
