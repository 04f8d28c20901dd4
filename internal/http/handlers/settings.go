package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jelantahgo/internal/domain/models"
)

// GET /api/settings
func GetSettings(c *gin.Context) {
	settings, err := settingsService(c).Get(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// PUT /api/settings
func UpdateSettings(c *gin.Context) {
	var req models.Settings
	if !BindJSONOrError(c, &req) {
		return
	}
	settings, err := settingsService(c).Update(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
