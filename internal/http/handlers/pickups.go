package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jelantahgo/internal/domain/models"
	"jelantahgo/internal/repositories"
	"jelantahgo/internal/services"
)

// GET /api/pickups?status=PENDING
func GetPickups(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	status := models.PickupStatus(c.Query("status"))
	pickups, err := pickupService(c).List(c.Request.Context(), actor, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pickups": pickups})
}

// GET /api/pickups/:id
func GetPickupByID(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := pickupService(c).Get(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pickup": p})
}

// POST /api/pickups
func CreatePickup(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	var req services.CreatePickupInput
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := pickupService(c).Create(c.Request.Context(), actor, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pickup": p})
}

// PUT /api/pickups/:id/accept
func AcceptPickup(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := pickupService(c).Accept(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pickup": p})
}

// PUT /api/pickups/:id/start
func StartPickup(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := pickupService(c).Start(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pickup": p})
}

// PATCH /api/pickups/:id/proof
func UpdatePickupProof(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req repositories.ProofUpdate
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := pickupService(c).UpdateProof(c.Request.Context(), actor, id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pickup": p})
}

// PUT /api/pickups/:id/complete
func CompletePickup(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := pickupService(c).Complete(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pickup": p})
}

// PUT /api/pickups/:id/warehouse-complete (legacy receipt confirmation)
func WarehouseCompletePickup(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := pickupService(c).CompleteByWarehouse(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pickup": p})
}

// PUT /api/pickups/:id/cancel
func CancelPickup(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := pickupService(c).Cancel(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pickup": p})
}

// GET /api/pricing/quote?volume=150
func GetPricingQuote(c *gin.Context) {
	volume, err := strconv.ParseFloat(c.Query("volume"), 64)
	if err != nil || volume <= 0 {
		RespondError(c, http.StatusBadRequest, "parameter volume tidak valid", err)
		return
	}
	quote, err := pricingService(c).Breakdown(c.Request.Context(), volume)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}
