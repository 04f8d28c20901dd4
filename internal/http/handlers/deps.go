package handlers

import (
	"github.com/gin-gonic/gin"

	intconfig "jelantahgo/internal/config"
	"jelantahgo/internal/http/middleware"
	"jelantahgo/internal/repositories"
	"jelantahgo/internal/services"
)

var jwtSecret []byte

// Configure wires package-level state from the loaded environment. Must
// run before the router starts serving.
func Configure(env intconfig.Env) {
	jwtSecret = []byte(env.JWTSecret)
}

// Per-request service builders. Services are cheap value structs; the
// only shared state behind them is the DB pool and the settings cache.

func notifService(c *gin.Context) services.NotificationService {
	return services.NotificationService{
		NotifRepo: repositories.NotificationRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func pricingService(c *gin.Context) services.PricingService {
	return services.PricingService{
		SettingsRepo: repositories.SettingsRepository{DB: intconfig.DB},
		RequestID:    middleware.GetRequestID(c),
	}
}

func authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		UserRepo:  repositories.UserRepository{DB: intconfig.DB},
		JWTSecret: jwtSecret,
		RequestID: middleware.GetRequestID(c),
	}
}

func userService(c *gin.Context) services.UserService {
	return services.UserService{
		UserRepo:  repositories.UserRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func pickupService(c *gin.Context) services.PickupService {
	return services.PickupService{
		DB:             intconfig.DB,
		PickupRepo:     repositories.PickupRepository{DB: intconfig.DB},
		UserRepo:       repositories.UserRepository{DB: intconfig.DB},
		BillRepo:       repositories.BillRepository{DB: intconfig.DB},
		CommissionRepo: repositories.CommissionRepository{DB: intconfig.DB},
		Pricing:        pricingService(c),
		Notif:          notifService(c),
		RequestID:      middleware.GetRequestID(c),
	}
}

func messageService(c *gin.Context) services.MessageService {
	return services.MessageService{
		MessageRepo: repositories.MessageRepository{DB: intconfig.DB},
		PickupRepo:  repositories.PickupRepository{DB: intconfig.DB},
		RequestID:   middleware.GetRequestID(c),
	}
}

func billService(c *gin.Context) services.BillService {
	return services.BillService{
		DB:        intconfig.DB,
		BillRepo:  repositories.BillRepository{DB: intconfig.DB},
		Notif:     notifService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

func commissionService(c *gin.Context) services.CommissionService {
	return services.CommissionService{
		DB:             intconfig.DB,
		CommissionRepo: repositories.CommissionRepository{DB: intconfig.DB},
		Notif:          notifService(c),
		RequestID:      middleware.GetRequestID(c),
	}
}

func settingsService(c *gin.Context) services.SettingsService {
	return services.SettingsService{
		SettingsRepo: repositories.SettingsRepository{DB: intconfig.DB},
		Pricing:      pricingService(c),
		RequestID:    middleware.GetRequestID(c),
	}
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		BillRepo:   repositories.BillRepository{DB: intconfig.DB},
		PickupRepo: repositories.PickupRepository{DB: intconfig.DB},
		UserRepo:   repositories.UserRepository{DB: intconfig.DB},
		RequestID:  middleware.GetRequestID(c),
	}
}

func reportService(c *gin.Context) services.ReportService {
	return services.ReportService{
		StatsRepo: repositories.StatsRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func dashboardService(c *gin.Context) services.DashboardService {
	return services.DashboardService{
		StatsRepo: repositories.StatsRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
}
