package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/staffdesk/staffdesk-backend/internal/users"
	"github.com/staffdesk/staffdesk-backend/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeCreatesProfileOnFirstContact(t *testing.T) {
	svc := users.NewService(users.NewMemoryRepository())

	g := gin.New()
	api := g.Group("/api")
	api.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, testEmployee)
		c.Next()
	})
	NewProfileHandler(svc).Register(api)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var u map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, "emp-1", u["id"])
	assert.Equal(t, "emp@example.com", u["email"])
	assert.Equal(t, "Em Ployee", u["name"])
}
