package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/domain/models"
	"jelantahgo/internal/repositories"
)

func TestUpdateSettingsInvalidatesPricingCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	seedPricingCache()

	pricing := PricingService{SettingsRepo: repositories.SettingsRepository{DB: db}}
	svc := SettingsService{
		SettingsRepo: repositories.SettingsRepository{DB: db},
		Pricing:      pricing,
	}

	in := models.DefaultSettings()
	in.PriceTier2Rate = 7200

	mock.ExpectQuery("SELECT (.+) FROM settings").WillReturnRows(settingsRows())
	mock.ExpectExec("UPDATE settings SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM settings").WillReturnRows(settingsRows())

	if _, err := svc.Update(context.Background(), in); err != nil {
		t.Fatalf("update error: %v", err)
	}

	// the cache was dropped, so the next pricing read must hit the DB
	mock.ExpectQuery("SELECT (.+) FROM settings").WillReturnRows(settingsRows())
	if _, err := pricing.Snapshot(context.Background()); err != nil {
		t.Fatalf("snapshot after update error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateSettingsRejectsOverlappingTiers(t *testing.T) {
	svc := SettingsService{}

	in := models.DefaultSettings()
	in.PriceTier2Min = 50 // overlaps tier 1

	_, err := svc.Update(context.Background(), in)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for overlapping tiers, got %v", err)
	}
}
