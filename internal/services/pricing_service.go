package services

import (
	"context"
	"sync"
	"time"

	"jelantahgo/internal/domain/models"
	"jelantahgo/internal/repositories"
)

// settingsCacheTTL bounds how long pricing may run on a stale snapshot.
const settingsCacheTTL = 5 * time.Minute

// Process-wide settings cache. One value, one timestamp; the mutex only
// guards the pointer swap, never a DB call in flight.
var settingsCache struct {
	mu        sync.Mutex
	value     *models.Settings
	fetchedAt time.Time
}

// PricingService translates volumes into rupiah amounts using the
// cached settings. All amounts within one computation come from a
// single snapshot, so a concurrent settings update can never mix rates.
type PricingService struct {
	SettingsRepo repositories.SettingsRepository
	RequestID    string
}

// Snapshot returns the current settings, served from cache when fresh.
func (s PricingService) Snapshot(ctx context.Context) (models.Settings, error) {
	settingsCache.mu.Lock()
	if settingsCache.value != nil && time.Since(settingsCache.fetchedAt) < settingsCacheTTL {
		v := *settingsCache.value
		settingsCache.mu.Unlock()
		return v, nil
	}
	settingsCache.mu.Unlock()

	v, err := s.SettingsRepo.GetOrCreate(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	settingsCache.mu.Lock()
	settingsCache.value = &v
	settingsCache.fetchedAt = time.Now()
	settingsCache.mu.Unlock()
	return v, nil
}

// Invalidate drops the cached settings. Must be called synchronously
// after every settings write so the next calculation sees new rates.
func (s PricingService) Invalidate() {
	settingsCache.mu.Lock()
	settingsCache.value = nil
	settingsCache.fetchedAt = time.Time{}
	settingsCache.mu.Unlock()
}

// Breakdown is the full pricing result for one volume.
type Breakdown struct {
	Volume              float64 `json:"volume"`
	PricePerLiter       int64   `json:"pricePerLiter"`
	TotalPrice          int64   `json:"totalPrice"`
	CourierCommission   int64   `json:"courierCommission"`
	AffiliateCommission int64   `json:"affiliateCommission"`
}

func (s PricingService) Breakdown(ctx context.Context, volume float64) (Breakdown, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Breakdown{}, err
	}
	return BreakdownFrom(snap, volume), nil
}

// BreakdownFrom computes every amount from one already-loaded snapshot.
func BreakdownFrom(snap models.Settings, volume float64) Breakdown {
	return Breakdown{
		Volume:              volume,
		PricePerLiter:       snap.PricePerLiter(volume),
		TotalPrice:          snap.TotalPrice(volume),
		CourierCommission:   snap.CourierCommission(volume),
		AffiliateCommission: snap.AffiliateCommission(volume),
	}
}
