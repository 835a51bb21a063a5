package users

import (
	"context"
	"errors"

	"github.com/staffdesk/staffdesk-backend/internal/apperr"
	"github.com/staffdesk/staffdesk-backend/internal/identity"
	"github.com/staffdesk/staffdesk-backend/internal/models"
)

// Service encapsulates user profile business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// EnsureFromIdentity creates or refreshes the caller's profile from the
// verified identity. The profile id always equals the authenticated
// subject.
func (s *Service) EnsureFromIdentity(ctx context.Context, ident identity.Identity) (*models.User, error) {
	if !ident.Authenticated() {
		return nil, apperr.ErrUnauthenticated
	}
	u := &models.User{
		ID:    ident.Subject,
		Email: ident.Email,
		Name:  ident.Name,
	}
	stored, err := s.repo.Upsert(ctx, u)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	return stored, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.E(apperr.ErrNotFound, "user %s", id)
		}
		return nil, apperr.Wrap(err)
	}
	return u, nil
}

// SetProfilePicture records the blob URL of the user's current profile
// photo. Missing profiles are tolerated: the photo upload path calls
// this best-effort before the user ever hit /api/me.
func (s *Service) SetProfilePicture(ctx context.Context, id, url string) error {
	if err := s.repo.SetProfilePicture(ctx, id, url); err != nil && !errors.Is(err, ErrNotFound) {
		return apperr.Wrap(err)
	}
	return nil
}
