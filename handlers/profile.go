package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffdesk/staffdesk-backend/internal/users"
	"github.com/staffdesk/staffdesk-backend/pkg/middleware"
)

// ProfileHandler exposes the caller's own profile. The first call
// creates the profile record from the verified identity.
type ProfileHandler struct {
	svc *users.Service
}

func NewProfileHandler(svc *users.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
}

func (h *ProfileHandler) Me(c *gin.Context) {
	u, err := h.svc.EnsureFromIdentity(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
