package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/http/middleware"
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

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return false
	}
	return true
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "parameter "+name+" tidak valid", err)
		return 0, false
	}
	return id, true
}

// MustActor returns the authenticated actor or aborts with 401. Routes
// behind RequireAuth always have one; this is the safety net.
func MustActor(c *gin.Context) (domain.RequestContext, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	return actor, ok
}
