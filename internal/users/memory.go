package users

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/staffdesk/staffdesk-backend/internal/models"
)

var ErrDuplicateEmail = errors.New("email already registered")

// MemoryRepository is the in-memory Repository twin used for unit tests
// and for running without MongoDB.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*models.User), byEmail: make(map[string]string)}
}

func (m *MemoryRepository) Upsert(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(u.Email)
	if owner, ok := m.byEmail[email]; ok && owner != u.ID && email != "" {
		return nil, ErrDuplicateEmail
	}

	now := time.Now().UTC()
	existing, ok := m.byID[u.ID]
	if !ok {
		stored := &models.User{ID: u.ID, Email: email, Name: u.Name, CreatedAt: now, UpdatedAt: now}
		m.byID[u.ID] = stored
		if email != "" {
			m.byEmail[email] = u.ID
		}
		cp := *stored
		return &cp, nil
	}

	if existing.Email != email {
		delete(m.byEmail, existing.Email)
		if email != "" {
			m.byEmail[email] = u.ID
		}
	}
	existing.Email = email
	existing.Name = u.Name
	existing.UpdatedAt = now
	cp := *existing
	return &cp, nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryRepository) SetProfilePicture(ctx context.Context, id, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.ProfilePicture = url
	u.UpdatedAt = time.Now().UTC()
	return nil
}
