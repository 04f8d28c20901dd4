package models

import (
	"math"
	"time"

	"jelantahgo/internal/domain"
)

// Settings is the singleton pricing configuration: three volume tiers
// (tier 3 open-ended) plus flat per-liter commission rates. All rates
// are rupiah; volumes are liters.
type Settings struct {
	ID int64 `json:"id"`

	PriceTier1Min  float64 `json:"priceTier1Min"`
	PriceTier1Max  float64 `json:"priceTier1Max"`
	PriceTier1Rate int64   `json:"priceTier1Rate"`

	PriceTier2Min  float64 `json:"priceTier2Min"`
	PriceTier2Max  float64 `json:"priceTier2Max"`
	PriceTier2Rate int64   `json:"priceTier2Rate"`

	PriceTier3Min  float64 `json:"priceTier3Min"`
	PriceTier3Rate int64   `json:"priceTier3Rate"`

	CourierCommissionPerLiter   int64 `json:"courierCommissionPerLiter"`
	CourierDailySalary          int64 `json:"courierDailySalary"`
	AffiliateCommissionPerLiter int64 `json:"affiliateCommissionPerLiter"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultSettings is used when the settings row does not exist yet.
func DefaultSettings() Settings {
	return Settings{
		PriceTier1Min:  1,
		PriceTier1Max:  99,
		PriceTier1Rate: 6500,
		PriceTier2Min:  100,
		PriceTier2Max:  199,
		PriceTier2Rate: 7000,
		PriceTier3Min:  200,
		PriceTier3Rate: 7500,

		CourierCommissionPerLiter:   500,
		CourierDailySalary:          100000,
		AffiliateCommissionPerLiter: 200,
	}
}

// Validate rejects overlapping or non-monotonic tier ranges before they
// reach storage. Admin input is not trusted here.
func (s Settings) Validate() error {
	if s.PriceTier1Min > s.PriceTier1Max {
		return domain.ValidationError{Field: "priceTier1", Msg: "min melebihi max"}
	}
	if s.PriceTier2Min > s.PriceTier2Max {
		return domain.ValidationError{Field: "priceTier2", Msg: "min melebihi max"}
	}
	if s.PriceTier2Min <= s.PriceTier1Max {
		return domain.ValidationError{Field: "priceTier2Min", Msg: "harus lebih besar dari tier 1 max"}
	}
	if s.PriceTier3Min <= s.PriceTier2Max {
		return domain.ValidationError{Field: "priceTier3Min", Msg: "harus lebih besar dari tier 2 max"}
	}
	if s.PriceTier1Rate <= 0 || s.PriceTier2Rate <= 0 || s.PriceTier3Rate <= 0 {
		return domain.ValidationError{Field: "priceTierRate", Msg: "rate harus lebih dari 0"}
	}
	if s.CourierCommissionPerLiter < 0 || s.AffiliateCommissionPerLiter < 0 || s.CourierDailySalary < 0 {
		return domain.ValidationError{Field: "commission", Msg: "tidak boleh negatif"}
	}
	return nil
}

// PricePerLiter selects the tier containing volume, first match wins in
// tier order. Volumes below tier 1 (or in a gap between tiers) fall
// back to the tier 1 rate; this mirrors the documented fallback and is
// deliberately not an error.
func (s Settings) PricePerLiter(volume float64) int64 {
	if volume >= s.PriceTier1Min && volume <= s.PriceTier1Max {
		return s.PriceTier1Rate
	}
	if volume >= s.PriceTier2Min && volume <= s.PriceTier2Max {
		return s.PriceTier2Rate
	}
	if volume >= s.PriceTier3Min {
		return s.PriceTier3Rate
	}
	return s.PriceTier1Rate
}

func (s Settings) TotalPrice(volume float64) int64 {
	return roundRupiah(volume * float64(s.PricePerLiter(volume)))
}

func (s Settings) CourierCommission(volume float64) int64 {
	return roundRupiah(volume * float64(s.CourierCommissionPerLiter))
}

// AffiliateCommission is computed unconditionally; callers decide
// whether the customer's referrer actually earns it.
func (s Settings) AffiliateCommission(volume float64) int64 {
	return roundRupiah(volume * float64(s.AffiliateCommissionPerLiter))
}

// roundRupiah rounds to whole rupiah at the point of persistence.
func roundRupiah(x float64) int64 {
	return int64(math.Round(x))
}
