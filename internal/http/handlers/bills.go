package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jelantahgo/internal/domain/models"
)

// GET /api/bills?status=UNPAID
func GetBills(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	status := models.BillStatus(c.Query("status"))
	bills, err := billService(c).List(c.Request.Context(), actor, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// GET /api/bills/:id
func GetBillByID(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	bill, err := billService(c).Get(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

type payBillRequest struct {
	PaymentProof string `json:"paymentProof"`
}

// PUT /api/bills/:id/pay
func PayBill(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req payBillRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	bill, err := billService(c).ConfirmPaid(c.Request.Context(), actor, id, req.PaymentProof)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// PUT /api/bills/:id/cancel
func CancelBill(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	bill, err := billService(c).Cancel(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// GET /api/bills/:id/invoice
func GetBillInvoicePDF(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := docsService(c).GenerateInvoice(c.Request.Context(), actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
