package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/staffdesk/staffdesk-backend/internal/config"
	"github.com/staffdesk/staffdesk-backend/internal/identity"
	photorepo "github.com/staffdesk/staffdesk-backend/internal/photo/repository"
	photosvc "github.com/staffdesk/staffdesk-backend/internal/photo/service"
	"github.com/staffdesk/staffdesk-backend/internal/storage"
	"github.com/staffdesk/staffdesk-backend/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPhotoRouter(ident identity.Identity, maxBytes int64) (*gin.Engine, *storage.MemoryStore) {
	blobs := storage.NewMemoryStore()
	svc := photosvc.New(photorepo.NewMemoryRepo(), blobs, nil,
		config.UploadConfig{MaxBytes: maxBytes, DefaultContentType: "image/jpeg"})

	g := gin.New()
	api := g.Group("/api")
	api.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, ident)
		c.Next()
	})
	NewPhotoHandler(svc).Register(api)
	return g, blobs
}

func TestUploadPhoto(t *testing.T) {
	g, blobs := newPhotoRouter(testEmployee, 1<<20)

	img := base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff})
	w := postJSON(g, "/api/photos", fmt.Sprintf(`{"imageData":%q,"caption":"me"}`, img))
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "emp-1", created["userId"])
	assert.Equal(t, "me", created["caption"])
	key := created["storageKey"].(string)
	assert.Equal(t, fmt.Sprintf("photos/emp-1/%s", created["id"]), key)
	assert.Equal(t, "memory://"+key, created["url"])

	_, _, ok := blobs.Object(key)
	assert.True(t, ok)
}

func TestUploadPhotoInvalidPayload(t *testing.T) {
	g, blobs := newPhotoRouter(testEmployee, 1<<20)

	w := postJSON(g, "/api/photos", `{"imageData":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(g, "/api/photos", `{"imageData":"!!!"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, 0, blobs.Len())
}

func TestUploadPhotoTooLarge(t *testing.T) {
	g, _ := newPhotoRouter(testEmployee, 4)

	img := base64.StdEncoding.EncodeToString([]byte("way too big"))
	w := postJSON(g, "/api/photos", fmt.Sprintf(`{"imageData":%q}`, img))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PAYLOAD_TOO_LARGE", resp["error"])
}

func TestUploadPhotoUnauthenticated(t *testing.T) {
	g, _ := newPhotoRouter(identity.Identity{}, 1<<20)
	w := postJSON(g, "/api/photos", `{"imageData":"aGk="}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
