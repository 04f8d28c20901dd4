package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "jelantahgo/internal/config"
	"jelantahgo/internal/repositories"
)

// GET /api/notifications
func GetNotifications(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	repo := repositories.NotificationRepository{DB: intconfig.DB}
	notifications, err := repo.ListByUser(c.Request.Context(), actor.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// PUT /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.NotificationRepository{DB: intconfig.DB}
	if err := repo.MarkRead(c.Request.Context(), id, actor.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notifikasi ditandai sudah dibaca"})
}
