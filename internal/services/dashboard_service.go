package services

import (
	"context"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/repositories"
)

type DashboardService struct {
	StatsRepo repositories.StatsRepository
	RequestID string
}

// Stats returns counters scoped to the actor's role. Admin and
// warehouse get the platform-wide view; customers and couriers only
// see their own numbers.
func (s DashboardService) Stats(ctx context.Context, actor domain.RequestContext) (any, error) {
	switch actor.Role {
	case domain.RoleCustomer:
		return s.StatsRepo.Customer(ctx, actor.UserID)
	case domain.RoleCourier:
		return s.StatsRepo.Courier(ctx, actor.UserID)
	default:
		return s.StatsRepo.Dashboard(ctx)
	}
}
