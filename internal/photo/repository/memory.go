package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/staffdesk/staffdesk-backend/internal/photo"
)

// MemoryRepo is the in-memory Repository twin used for unit tests and
// for running without MongoDB.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*photo.Photo
	// CreateErr, when set, makes every Create fail. Test hook for the
	// blob-then-record partial failure path.
	CreateErr error
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*photo.Photo)}
}

func (m *MemoryRepo) Create(ctx context.Context, p *photo.Photo) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*photo.Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]*photo.Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*photo.Photo{}
	for _, p := range m.store {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
