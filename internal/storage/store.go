// Package storage persists the unified game table. All implementations
// follow the read-entire/compute/write-entire discipline: Save replaces
// the whole table atomically, so a crashed run leaves either the old or
// the new table, never a half-written one.
package storage

import (
	"context"
	"sync"

	"github.com/yourusername/fireball-picks/internal/models"
)

// Store is the persistence adapter for a game table
type Store interface {
	// Load reads the entire persisted table. An absent table is not an
	// error; it loads as an empty slice.
	Load(ctx context.Context) ([]*models.Game, error)

	// Save atomically replaces the persisted table.
	Save(ctx context.Context, games []*models.Game) error
}

// MemoryStore is an in-memory Store for tests and dry runs
type MemoryStore struct {
	mu    sync.Mutex
	games []*models.Game
	saves int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a deep copy of the stored table
func (s *MemoryStore) Load(ctx context.Context) ([]*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneGames(s.games), nil
}

// Save replaces the stored table with a deep copy
func (s *MemoryStore) Save(ctx context.Context, games []*models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games = cloneGames(games)
	s.saves++
	return nil
}

// SaveCount returns how many times Save has been called
func (s *MemoryStore) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func cloneGames(games []*models.Game) []*models.Game {
	clones := make([]*models.Game, len(games))
	for i, game := range games {
		clones[i] = game.Clone()
	}
	return clones
}
