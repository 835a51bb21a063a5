package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/staffdesk/staffdesk-backend/internal/apperr"
)

// writeError maps a service error onto the wire contract:
// {"error": CODE, "message": ...} with the taxonomy status code.
func writeError(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"error": apperr.Code(err), "message": err.Error()})
}
