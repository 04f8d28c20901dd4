package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/dashboard
func GetDashboardStats(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	stats, err := dashboardService(c).Stats(c.Request.Context(), actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
