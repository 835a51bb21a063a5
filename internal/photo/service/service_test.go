package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/staffdesk/staffdesk-backend/internal/apperr"
	"github.com/staffdesk/staffdesk-backend/internal/config"
	"github.com/staffdesk/staffdesk-backend/internal/identity"
	"github.com/staffdesk/staffdesk-backend/internal/photo/repository"
	"github.com/staffdesk/staffdesk-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uploader = identity.Identity{Subject: "emp-9", Email: "nine@example.com"}

func uploadCfg() config.UploadConfig {
	return config.UploadConfig{MaxBytes: 1 << 20, DefaultContentType: "image/jpeg"}
}

type profileRecorder struct {
	userID string
	url    string
}

func (p *profileRecorder) SetProfilePicture(ctx context.Context, id, url string) error {
	p.userID, p.url = id, url
	return nil
}

func TestUploadStoresBlobThenRecord(t *testing.T) {
	repo := repository.NewMemoryRepo()
	blobs := storage.NewMemoryStore()
	profiles := &profileRecorder{}
	svc := New(repo, blobs, profiles, uploadCfg())

	raw := []byte{0xff, 0xd8, 0xff, 0xe0}
	p, err := svc.Upload(context.Background(), uploader, UploadInput{
		ImageData: base64.StdEncoding.EncodeToString(raw),
		Caption:   "new badge photo",
	})
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "emp-9", p.UserID)
	assert.Equal(t, fmt.Sprintf("photos/emp-9/%s", p.ID), p.StorageKey)
	assert.Equal(t, "memory://"+p.StorageKey, p.URL)
	assert.Equal(t, "image/jpeg", p.ContentType)
	assert.Equal(t, int64(len(raw)), p.SizeBytes)
	assert.Equal(t, "new badge photo", p.Caption)

	data, ct, ok := blobs.Object(p.StorageKey)
	require.True(t, ok)
	assert.Equal(t, raw, data)
	assert.Equal(t, "image/jpeg", ct)

	stored, err := repo.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.URL, stored.URL)

	// profile picture follows the upload
	assert.Equal(t, "emp-9", profiles.userID)
	assert.Equal(t, p.URL, profiles.url)
}

func TestUploadRejectsBadPayloads(t *testing.T) {
	repo := repository.NewMemoryRepo()
	blobs := storage.NewMemoryStore()
	svc := New(repo, blobs, nil, uploadCfg())
	ctx := context.Background()

	_, err := svc.Upload(ctx, uploader, UploadInput{ImageData: "not-base64!!"})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Upload(ctx, uploader, UploadInput{ImageData: ""})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Upload(ctx, identity.Identity{}, UploadInput{ImageData: "aGk="})
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)

	// no blob and no record written on rejection
	assert.Equal(t, 0, blobs.Len())
	list, err := repo.ListByUser(ctx, uploader.Subject)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUploadEnforcesSizeLimit(t *testing.T) {
	repo := repository.NewMemoryRepo()
	blobs := storage.NewMemoryStore()
	svc := New(repo, blobs, nil, config.UploadConfig{MaxBytes: 8, DefaultContentType: "image/jpeg"})

	big := make([]byte, 9)
	_, err := svc.Upload(context.Background(), uploader, UploadInput{ImageData: base64.StdEncoding.EncodeToString(big)})
	require.ErrorIs(t, err, apperr.ErrPayloadTooLarge)
	assert.Equal(t, 0, blobs.Len())
}

func TestUploadRecordFailureLeavesOrphanedBlob(t *testing.T) {
	repo := repository.NewMemoryRepo()
	repo.CreateErr = errors.New("record store down")
	blobs := storage.NewMemoryStore()
	svc := New(repo, blobs, nil, uploadCfg())

	_, err := svc.Upload(context.Background(), uploader, UploadInput{ImageData: "aGVsbG8="})
	require.ErrorIs(t, err, apperr.ErrStorage)
	// documented failure mode: blob written, record missing
	assert.Equal(t, 1, blobs.Len())
}

func TestUploadBlobFailureWritesNothing(t *testing.T) {
	repo := repository.NewMemoryRepo()
	blobs := storage.NewMemoryStore()
	blobs.PutErr = errors.New("blob store down")
	svc := New(repo, blobs, nil, uploadCfg())

	_, err := svc.Upload(context.Background(), uploader, UploadInput{ImageData: "aGVsbG8="})
	require.ErrorIs(t, err, apperr.ErrStorage)
	list, err := repo.ListByUser(context.Background(), uploader.Subject)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListForOwnerAccess(t *testing.T) {
	repo := repository.NewMemoryRepo()
	blobs := storage.NewMemoryStore()
	svc := New(repo, blobs, nil, uploadCfg())
	ctx := context.Background()

	_, err := svc.Upload(ctx, uploader, UploadInput{ImageData: "aGVsbG8="})
	require.NoError(t, err)

	list, err := svc.ListForOwner(ctx, uploader, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListForOwner(ctx, identity.Identity{Subject: "other"}, uploader.Subject)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	rev := identity.Identity{Subject: "rev", Roles: []string{identity.RoleReviewer}}
	list, err = svc.ListForOwner(ctx, rev, uploader.Subject)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
