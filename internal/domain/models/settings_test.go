package models

import "testing"

func TestPricePerLiterTierSelection(t *testing.T) {
	s := DefaultSettings()

	cases := []struct {
		name   string
		volume float64
		want   int64
	}{
		{"tier1 lower bound", 1, 6500},
		{"tier1 upper bound", 99, 6500},
		{"tier2 lower bound", 100, 7000},
		{"tier2 upper bound", 199, 7000},
		{"tier3 lower bound", 200, 7500},
		{"tier3 open ended", 100000, 7500},
		{"below tier1 falls back to tier1 rate", 0.5, 6500},
		{"gap between tiers falls back to tier1 rate", 99.5, 6500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.PricePerLiter(tc.volume); got != tc.want {
				t.Fatalf("PricePerLiter(%v) = %d, want %d", tc.volume, got, tc.want)
			}
		})
	}
}

func TestTotalPriceUsesSelectedTierRate(t *testing.T) {
	s := DefaultSettings()

	if got := s.TotalPrice(150); got != 1050000 {
		t.Fatalf("TotalPrice(150) = %d, want 1050000", got)
	}
	if got := s.TotalPrice(50); got != 325000 {
		t.Fatalf("TotalPrice(50) = %d, want 325000", got)
	}
	// fractional volume rounds to whole rupiah
	if got := s.TotalPrice(10.5); got != 68250 {
		t.Fatalf("TotalPrice(10.5) = %d, want 68250", got)
	}
}

func TestCommissionsIndependentOfTier(t *testing.T) {
	s := DefaultSettings()

	// komisi flat per liter, tidak ikut tier harga
	for _, volume := range []float64{10, 150, 500} {
		wantCourier := int64(volume * 500)
		wantAffiliate := int64(volume * 200)
		if got := s.CourierCommission(volume); got != wantCourier {
			t.Fatalf("CourierCommission(%v) = %d, want %d", volume, got, wantCourier)
		}
		if got := s.AffiliateCommission(volume); got != wantAffiliate {
			t.Fatalf("AffiliateCommission(%v) = %d, want %d", volume, got, wantAffiliate)
		}
	}
}

func TestSettingsValidate(t *testing.T) {
	valid := DefaultSettings()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default settings should be valid, got %v", err)
	}

	overlap := DefaultSettings()
	overlap.PriceTier2Min = 50
	if err := overlap.Validate(); err == nil {
		t.Fatal("overlapping tier2 min should be rejected")
	}

	inverted := DefaultSettings()
	inverted.PriceTier1Min = 200
	if err := inverted.Validate(); err == nil {
		t.Fatal("tier1 min above max should be rejected")
	}

	zeroRate := DefaultSettings()
	zeroRate.PriceTier3Rate = 0
	if err := zeroRate.Validate(); err == nil {
		t.Fatal("zero rate should be rejected")
	}

	negativeCommission := DefaultSettings()
	negativeCommission.AffiliateCommissionPerLiter = -1
	if err := negativeCommission.Validate(); err == nil {
		t.Fatal("negative commission should be rejected")
	}
}
