package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/pickups?from=2025-01-01&to=2025-01-31
func GetPickupRecapXLSX(c *gin.Context) {
	data, filename, err := reportService(c).PickupRecapXLSX(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
