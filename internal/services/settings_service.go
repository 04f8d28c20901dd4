package services

import (
	"context"

	"jelantahgo/internal/domain/models"
	"jelantahgo/internal/repositories"
	"jelantahgo/internal/utils"
)

type SettingsService struct {
	SettingsRepo repositories.SettingsRepository
	Pricing      PricingService
	RequestID    string
}

func (s SettingsService) Get(ctx context.Context) (models.Settings, error) {
	return s.SettingsRepo.GetOrCreate(ctx)
}

// Update validates the tier table, writes it, then drops the pricing
// cache. The invalidation must happen before returning so the very next
// pricing call already sees the new rates instead of waiting out the TTL.
func (s SettingsService) Update(ctx context.Context, in models.Settings) (models.Settings, error) {
	if err := in.Validate(); err != nil {
		return models.Settings{}, err
	}

	current, err := s.SettingsRepo.GetOrCreate(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	in.ID = current.ID

	if err := s.SettingsRepo.Update(ctx, in); err != nil {
		return models.Settings{}, err
	}
	s.Pricing.Invalidate()

	utils.LogEvent(s.RequestID, "settings", "update", "pengaturan harga diperbarui, cache di-reset")
	return s.SettingsRepo.GetOrCreate(ctx)
}
