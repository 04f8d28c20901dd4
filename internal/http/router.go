package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "jelantahgo/internal/config"
	"jelantahgo/internal/domain"
	h "jelantahgo/internal/http/handlers"
	"jelantahgo/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)
	secret := []byte(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/me", middleware.RequireAuth(secret), h.Me)
		auth.PATCH("/profile", middleware.RequireAuth(secret), h.UpdateProfile)

		// Everything below needs a token.
		authed := api.Group("")
		authed.Use(middleware.RequireAuth(secret))

		// Users (admin only)
		users := authed.Group("/users", middleware.RequireRoles(domain.RoleAdmin))
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)

		// Pickups
		pickups := authed.Group("/pickups")
		pickups.GET("", h.GetPickups)
		pickups.GET("/:id", h.GetPickupByID)
		pickups.POST("", h.CreatePickup)
		pickups.PUT("/:id/accept", middleware.RequireRoles(domain.RoleCourier), h.AcceptPickup)
		pickups.PUT("/:id/start", middleware.RequireRoles(domain.RoleCourier), h.StartPickup)
		pickups.PATCH("/:id/proof", middleware.RequireRoles(domain.RoleCourier), h.UpdatePickupProof)
		pickups.PUT("/:id/complete", middleware.RequireRoles(domain.RoleCourier), h.CompletePickup)
		pickups.PUT("/:id/warehouse-complete", middleware.RequireRoles(domain.RoleWarehouse), h.WarehouseCompletePickup)
		pickups.PUT("/:id/cancel", h.CancelPickup)
		pickups.GET("/:id/messages", h.GetPickupMessages)
		pickups.POST("/:id/messages", h.SendPickupMessage)

		// Pricing quote
		authed.GET("/pricing/quote", h.GetPricingQuote)

		// Bills
		bills := authed.Group("/bills")
		bills.GET("", h.GetBills)
		bills.GET("/:id", h.GetBillByID)
		bills.GET("/:id/invoice", h.GetBillInvoicePDF)
		bills.PUT("/:id/pay", middleware.RequireRoles(domain.RoleAdmin, domain.RoleWarehouse), h.PayBill)
		bills.PUT("/:id/cancel", middleware.RequireRoles(domain.RoleAdmin), h.CancelBill)

		// Commissions
		commissions := authed.Group("/commissions")
		commissions.GET("", h.GetCommissions)
		commissions.GET("/:id", h.GetCommissionByID)
		commissions.PUT("/:id/pay", middleware.RequireRoles(domain.RoleAdmin, domain.RoleWarehouse), h.PayCommission)
		commissions.PUT("/:id/cancel", middleware.RequireRoles(domain.RoleAdmin), h.CancelCommission)

		// Settings (admin only)
		settings := authed.Group("/settings", middleware.RequireRoles(domain.RoleAdmin))
		settings.GET("", h.GetSettings)
		settings.PUT("", h.UpdateSettings)

		// Notifications
		notifications := authed.Group("/notifications")
		notifications.GET("", h.GetNotifications)
		notifications.PUT("/:id/read", h.MarkNotificationRead)

		// Dashboard (role-aware) & reports (admin only)
		authed.GET("/dashboard", h.GetDashboardStats)
		authed.GET("/reports/pickups/export", middleware.RequireRoles(domain.RoleAdmin), h.GetPickupRecapXLSX)
	}

	return r
}
