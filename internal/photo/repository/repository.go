package repository

import (
	"context"
	"errors"

	"github.com/staffdesk/staffdesk-backend/internal/photo"
)

var ErrNotFound = errors.New("photo not found")

// Repository defines persistence operations for photo records.
type Repository interface {
	Create(ctx context.Context, p *photo.Photo) error
	Get(ctx context.Context, id string) (*photo.Photo, error)
	ListByUser(ctx context.Context, userID string) ([]*photo.Photo, error)
}
