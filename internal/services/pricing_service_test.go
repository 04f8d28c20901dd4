package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"jelantahgo/internal/domain/models"
	"jelantahgo/internal/repositories"
)

func settingsRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id",
		"price_tier1_min", "price_tier1_max", "price_tier1_rate",
		"price_tier2_min", "price_tier2_max", "price_tier2_rate",
		"price_tier3_min", "price_tier3_rate",
		"courier_commission_per_liter", "courier_daily_salary", "affiliate_commission_per_liter",
		"created_at", "updated_at",
	}).AddRow(
		1,
		1.0, 99.0, 6500,
		100.0, 199.0, 7000,
		200.0, 7500,
		500, 100000, 200,
		now, now,
	)
}

func TestSnapshotCachesUntilInvalidated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := PricingService{SettingsRepo: repositories.SettingsRepository{DB: db}}
	svc.Invalidate()

	// first call hits the database
	mock.ExpectQuery("SELECT (.+) FROM settings").WillReturnRows(settingsRows())
	first, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("first snapshot error: %v", err)
	}
	if first.PriceTier2Rate != 7000 {
		t.Fatalf("unexpected tier2 rate: %d", first.PriceTier2Rate)
	}

	// second call is served from cache, no query expected
	if _, err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("cached snapshot error: %v", err)
	}

	// after invalidation the database is consulted again
	svc.Invalidate()
	mock.ExpectQuery("SELECT (.+) FROM settings").WillReturnRows(settingsRows())
	if _, err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("post-invalidate snapshot error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBreakdownFromSingleSnapshot(t *testing.T) {
	snap := models.DefaultSettings()
	b := BreakdownFrom(snap, 150)

	if b.PricePerLiter != 7000 {
		t.Fatalf("PricePerLiter = %d, want 7000", b.PricePerLiter)
	}
	if b.TotalPrice != 1050000 {
		t.Fatalf("TotalPrice = %d, want 1050000", b.TotalPrice)
	}
	if b.CourierCommission != 75000 {
		t.Fatalf("CourierCommission = %d, want 75000", b.CourierCommission)
	}
	if b.AffiliateCommission != 30000 {
		t.Fatalf("AffiliateCommission = %d, want 30000", b.AffiliateCommission)
	}
}
