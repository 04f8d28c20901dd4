package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jelantahgo/internal/domain/models"
)

// GET /api/commissions?status=PENDING
func GetCommissions(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	status := models.CommissionStatus(c.Query("status"))
	commissions, err := commissionService(c).List(c.Request.Context(), actor, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commissions": commissions})
}

// GET /api/commissions/:id
func GetCommissionByID(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	commission, err := commissionService(c).Get(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commission": commission})
}

type payCommissionRequest struct {
	PaymentProof string `json:"paymentProof"`
}

// PUT /api/commissions/:id/pay
func PayCommission(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req payCommissionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	commission, err := commissionService(c).MarkPaid(c.Request.Context(), actor, id, req.PaymentProof)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commission": commission})
}

// PUT /api/commissions/:id/cancel
func CancelCommission(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	commission, err := commissionService(c).Cancel(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commission": commission})
}
