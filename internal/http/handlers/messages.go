package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jelantahgo/internal/services"
)

// GET /api/pickups/:id/messages
func GetPickupMessages(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	messages, err := messageService(c).List(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// POST /api/pickups/:id/messages
func SendPickupMessage(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.SendMessageInput
	if !BindJSONOrError(c, &req) {
		return
	}
	m, err := messageService(c).Send(c.Request.Context(), actor, id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": m})
}
