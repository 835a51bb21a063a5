package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	leavesvc "github.com/staffdesk/staffdesk-backend/internal/leave/service"
	"github.com/staffdesk/staffdesk-backend/pkg/middleware"
)

// LeaveHandler exposes the leave request workflow over HTTP.
type LeaveHandler struct {
	svc *leavesvc.Service
}

func NewLeaveHandler(svc *leavesvc.Service) *LeaveHandler {
	return &LeaveHandler{svc: svc}
}

// Register routes under the authenticated API group.
func (h *LeaveHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/leave-requests", h.Submit)
	rg.POST("/leave-requests/:id/transition", h.Transition)
	rg.GET("/leave-requests", h.List)
}

func (h *LeaveHandler) Submit(c *gin.Context) {
	var req leavesvc.SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}
	lr, err := h.svc.Submit(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lr)
}

func (h *LeaveHandler) Transition(c *gin.Context) {
	var req struct {
		NewStatus string `json:"newStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}
	lr, err := h.svc.Transition(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req.NewStatus)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lr)
}

func (h *LeaveHandler) List(c *gin.Context) {
	list, err := h.svc.ListForOwner(c.Request.Context(), middleware.IdentityFrom(c), c.Query("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
