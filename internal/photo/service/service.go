package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/staffdesk-backend/internal/apperr"
	"github.com/staffdesk/staffdesk-backend/internal/config"
	"github.com/staffdesk/staffdesk-backend/internal/identity"
	"github.com/staffdesk/staffdesk-backend/internal/photo"
	"github.com/staffdesk/staffdesk-backend/internal/photo/repository"
	"github.com/staffdesk/staffdesk-backend/internal/storage"
	"github.com/staffdesk/staffdesk-backend/pkg/logger"
	"github.com/staffdesk/staffdesk-backend/pkg/metrics"
)

// ProfileUpdater records the uploaded photo as the owner's current
// profile picture. Implemented by the users service.
type ProfileUpdater interface {
	SetProfilePicture(ctx context.Context, id, url string) error
}

// Service implements the photo upload pipeline: decode, size check,
// blob write, record write.
type Service struct {
	repo     repository.Repository
	blobs    storage.BlobStore
	profiles ProfileUpdater
	cfg      config.UploadConfig
	now      func() time.Time
}

// New constructs the service. profiles may be nil when profile picture
// tracking is not wanted.
func New(repo repository.Repository, blobs storage.BlobStore, profiles ProfileUpdater, cfg config.UploadConfig) *Service {
	return &Service{repo: repo, blobs: blobs, profiles: profiles, cfg: cfg, now: time.Now}
}

// UploadInput carries the upload arguments. ImageData is base64 as it
// arrives on the wire.
type UploadInput struct {
	ImageData   string `json:"imageData"`
	Caption     string `json:"caption"`
	ContentType string `json:"contentType"`
}

// Upload decodes and stores an image for the caller. The blob is
// written first; if the record write then fails the blob is orphaned —
// accepted and logged, reconciliation is out of scope.
func (s *Service) Upload(ctx context.Context, ident identity.Identity, in UploadInput) (*photo.Photo, error) {
	if !ident.Authenticated() {
		return nil, apperr.ErrUnauthenticated
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(in.ImageData))
	if err != nil {
		return nil, apperr.E(apperr.ErrInvalidInput, "image data is not valid base64")
	}
	if len(data) == 0 {
		return nil, apperr.E(apperr.ErrInvalidInput, "image payload is empty")
	}
	if int64(len(data)) > s.cfg.MaxBytes {
		return nil, apperr.E(apperr.ErrPayloadTooLarge, "image is %d bytes, limit is %d", len(data), s.cfg.MaxBytes)
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = s.cfg.DefaultContentType
	}

	id := uuid.NewString()
	key := photo.StorageKey(ident.Subject, id)

	url, err := s.blobs.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, apperr.Wrap(err)
	}

	p := &photo.Photo{
		ID:          id,
		UserID:      ident.Subject,
		StorageKey:  key,
		URL:         url,
		Caption:     in.Caption,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		logger.Warnf("photo record write failed after blob write, orphaned blob %s: %v", key, err)
		return nil, apperr.Wrap(err)
	}
	metrics.PhotoUploads.Inc()
	metrics.PhotoUploadBytes.Add(float64(len(data)))

	if s.profiles != nil {
		if err := s.profiles.SetProfilePicture(ctx, ident.Subject, url); err != nil {
			logger.Warnf("profile picture update failed for %s: %v", ident.Subject, err)
		}
	}
	return p, nil
}

// ListForOwner returns the caller's photos newest-first. The reviewer
// role may list anyone's.
func (s *Service) ListForOwner(ctx context.Context, ident identity.Identity, userID string) ([]*photo.Photo, error) {
	if !ident.Authenticated() {
		return nil, apperr.ErrUnauthenticated
	}
	if userID == "" {
		userID = ident.Subject
	}
	if ident.Subject != userID && !ident.IsReviewer() {
		return nil, apperr.E(apperr.ErrForbidden, "cannot list another user's photos")
	}
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	return out, nil
}
