package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/todo-api/pkg/apperror"
)

// writeError translates a service error into the wire contract:
// validation failures answer 400 with a message, everything else
// answers its mapped status with an empty body so no internal detail or
// existence information leaks.
func writeError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Type == apperror.ValidationError {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
		return
	}
	c.AbortWithStatus(apperror.StatusOf(err))
}

// writeBindingError answers 400 with per-field details for malformed
// request bodies.
func writeBindingError(c *gin.Context, details map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": details})
}
