package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	photosvc "github.com/staffdesk/staffdesk-backend/internal/photo/service"
	"github.com/staffdesk/staffdesk-backend/pkg/middleware"
)

// PhotoHandler exposes the photo upload pipeline over HTTP.
type PhotoHandler struct {
	svc *photosvc.Service
}

func NewPhotoHandler(svc *photosvc.Service) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

func (h *PhotoHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/photos", h.Upload)
	rg.GET("/photos", h.List)
}

func (h *PhotoHandler) Upload(c *gin.Context) {
	var req photosvc.UploadInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}
	p, err := h.svc.Upload(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PhotoHandler) List(c *gin.Context) {
	list, err := h.svc.ListForOwner(c.Request.Context(), middleware.IdentityFrom(c), c.Query("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
