package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/types"
)

// MemoryStore is a Store kept in process memory, used when no database is
// configured and in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*types.UserProfile
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[uuid.UUID]*types.UserProfile)}
}

// Put inserts or overwrites a profile unconditionally.
func (m *MemoryStore) Put(p *types.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p.Clone()
}

// GetProfile implements Store.
func (m *MemoryStore) GetProfile(_ context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

// SaveProfile implements Store.
func (m *MemoryStore) SaveProfile(_ context.Context, p *types.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.profiles[p.ID]
	if !ok {
		return &NotFoundError{UserID: p.ID}
	}
	if stored.Version != p.Version {
		return ErrVersionConflict
	}
	p.Version++
	p.UpdatedAt = time.Now().UTC()
	m.profiles[p.ID] = p.Clone()
	return nil
}
