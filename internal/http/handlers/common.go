package handlers

import (
	"net/http"

	"agrisolve/internal/domain"
	"agrisolve/internal/http/middleware"
	"agrisolve/internal/services"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present, parsable and passes its binding rules.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if verr := services.AsValidationError(err); domain.IsValidation(verr) {
			RespondDomainError(c, verr)
			return false
		}
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
