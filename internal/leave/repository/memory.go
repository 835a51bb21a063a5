package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/staffdesk/staffdesk-backend/internal/leave"
)

// MemoryRepo is the in-memory Repository twin used for unit tests and
// for running without MongoDB. Its transition carries the same
// conditional-write semantics as the Mongo implementation.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*leave.LeaveRequest
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*leave.LeaveRequest)}
}

func (m *MemoryRepo) Create(ctx context.Context, lr *leave.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *lr
	m.store[lr.ID] = &cp
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lr, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *lr
	return &cp, nil
}

func (m *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]*leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*leave.LeaveRequest{}
	for _, lr := range m.store {
		if lr.UserID == userID {
			cp := *lr
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

func (m *MemoryRepo) TransitionFromPending(ctx context.Context, id string, to leave.Status, at time.Time) (*leave.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lr, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	if lr.Status != leave.StatusPending {
		cp := *lr
		return &cp, ErrStatusConflict
	}
	lr.Status = to
	lr.UpdatedAt = at
	cp := *lr
	return &cp, nil
}
