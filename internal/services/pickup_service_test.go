package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/domain/models"
	"jelantahgo/internal/repositories"
)

var pickupTestColumns = []string{
	"id", "customer_id", "courier_id", "warehouse_id", "status",
	"scheduled_date", "actual_date", "volume", "actual_volume",
	"price_per_liter", "total_price", "courier_fee", "affiliate_fee",
	"photo_proof", "bank_name", "account_name", "account_number", "notes",
	"created_at", "updated_at",
}

var userTestColumns = []string{
	"id", "email", "password_hash", "name", "phone", "address", "kota",
	"latitude", "longitude", "role", "is_active", "referral_code", "referred_by_id",
	"created_at", "updated_at",
}

// inProgressPickupRow is pickup #1 owned by customer #7, handled by
// courier #9, proof and actual volume already recorded.
func inProgressPickupRow(photoProof any, actualVolume any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(pickupTestColumns).AddRow(
		1, 7, 9, nil, "IN_PROGRESS",
		now, now, 140.0, actualVolume,
		7000, 980000, 70000, 0,
		photoProof, "BCA", "Budi", "1234567890", "",
		now, now,
	)
}

func completedPickupRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(pickupTestColumns).AddRow(
		1, 7, 9, nil, "COMPLETED",
		now, now, 140.0, 150.0,
		7000, 1050000, 75000, 30000,
		"proof.jpg", "BCA", "Budi", "1234567890", "",
		now, now,
	)
}

func customerRow(referredByID any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userTestColumns).AddRow(
		7, "budi@example.com", "hash", "Budi", "0811", "Jl. Melati 1", "Bandung",
		nil, nil, "CUSTOMER", true, "JG-BUDI77", referredByID,
		now, now,
	)
}

func newPickupTestService(db *sql.DB) PickupService {
	return PickupService{
		DB:             db,
		PickupRepo:     repositories.PickupRepository{DB: db},
		UserRepo:       repositories.UserRepository{DB: db},
		BillRepo:       repositories.BillRepository{DB: db},
		CommissionRepo: repositories.CommissionRepository{DB: db},
		Pricing:        PricingService{SettingsRepo: repositories.SettingsRepository{DB: db}},
		Notif:          NotificationService{NotifRepo: repositories.NotificationRepository{DB: db}},
	}
}

// seedPricingCache puts default rates in the shared cache so the tests
// exercise completion without a settings query.
func seedPricingCache() {
	v := models.DefaultSettings()
	settingsCache.mu.Lock()
	settingsCache.value = &v
	settingsCache.fetchedAt = time.Now()
	settingsCache.mu.Unlock()
}

func TestCompleteCreatesBillAndCommissionsAtomically(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	seedPricingCache()

	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").
		WillReturnRows(inProgressPickupRow("proof.jpg", 150.0))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(customerRow(5))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE pickups SET status='COMPLETED'").
		WithArgs(int64(7000), int64(1050000), int64(75000), int64(30000), int64(1), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bills").
		WithArgs(int64(1), int64(7), int64(1050000), "UNPAID", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO commissions").
		WithArgs(int64(1), int64(9), "COURIER", int64(75000), "PENDING").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO commissions").
		WithArgs(int64(1), int64(5), "AFFILIATE", int64(30000), "PENDING").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	// post-commit notifications for customer and courier
	mock.ExpectExec("INSERT INTO notifications").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO notifications").WillReturnResult(sqlmock.NewResult(2, 1))

	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").
		WillReturnRows(completedPickupRow())

	svc := newPickupTestService(db)
	actor := domain.RequestContext{UserID: 9, Role: domain.RoleCourier}

	p, err := svc.Complete(context.Background(), actor, 1)
	if err != nil {
		t.Fatalf("complete error: %v", err)
	}
	if p.Status != models.PickupCompleted {
		t.Fatalf("status = %s, want COMPLETED", p.Status)
	}
	if p.TotalPrice != 1050000 || p.CourierFee != 75000 || p.AffiliateFee != 30000 {
		t.Fatalf("unexpected settlement: total=%d courier=%d affiliate=%d",
			p.TotalPrice, p.CourierFee, p.AffiliateFee)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteWithoutReferrerSkipsAffiliateCommission(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	seedPricingCache()

	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").
		WillReturnRows(inProgressPickupRow("proof.jpg", 150.0))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(customerRow(nil))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE pickups SET status='COMPLETED'").
		WithArgs(int64(7000), int64(1050000), int64(75000), int64(0), int64(1), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bills").
		WillReturnResult(sqlmock.NewResult(10, 1))
	// exactly one commission: the courier's
	mock.ExpectExec("INSERT INTO commissions").
		WithArgs(int64(1), int64(9), "COURIER", int64(75000), "PENDING").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	mock.ExpectExec("INSERT INTO notifications").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO notifications").WillReturnResult(sqlmock.NewResult(2, 1))

	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").
		WillReturnRows(completedPickupRow())

	svc := newPickupTestService(db)
	actor := domain.RequestContext{UserID: 9, Role: domain.RoleCourier}

	if _, err := svc.Complete(context.Background(), actor, 1); err != nil {
		t.Fatalf("complete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteRequiresProofAndActualVolume(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	seedPricingCache()

	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").
		WillReturnRows(inProgressPickupRow(nil, 150.0))

	svc := newPickupTestService(db)
	actor := domain.RequestContext{UserID: 9, Role: domain.RoleCourier}

	_, err = svc.Complete(context.Background(), actor, 1)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error without photo proof, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteRejectsOtherCourier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").
		WillReturnRows(inProgressPickupRow("proof.jpg", 150.0))

	svc := newPickupTestService(db)
	actor := domain.RequestContext{UserID: 77, Role: domain.RoleCourier}

	_, err = svc.Complete(context.Background(), actor, 1)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden for non-assigned courier, got %v", err)
	}
}

func TestCompleteAlreadyCompletedIsInvalidState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").
		WillReturnRows(completedPickupRow())

	svc := newPickupTestService(db)
	actor := domain.RequestContext{UserID: 9, Role: domain.RoleCourier}

	_, err = svc.Complete(context.Background(), actor, 1)
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state for completed pickup, got %v", err)
	}
}

func TestAcceptLosingRaceReturnsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	pendingRow := sqlmock.NewRows(pickupTestColumns).AddRow(
		1, 7, nil, nil, "PENDING",
		now, nil, 140.0, nil,
		6500, 910000, 70000, 0,
		nil, nil, nil, nil, "",
		now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").WillReturnRows(pendingRow)

	// another courier won between the read and the update
	mock.ExpectExec("UPDATE pickups SET status='ASSIGNED'").
		WillReturnResult(sqlmock.NewResult(0, 0))

	svc := newPickupTestService(db)
	actor := domain.RequestContext{UserID: 9, Role: domain.RoleCourier}

	_, err = svc.Accept(context.Background(), actor, 1)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict when losing assignment race, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelOnlyFromPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").
		WillReturnRows(inProgressPickupRow("proof.jpg", 150.0))

	svc := newPickupTestService(db)
	actor := domain.RequestContext{UserID: 7, Role: domain.RoleCustomer}

	_, err = svc.Cancel(context.Background(), actor, 1)
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state cancelling IN_PROGRESS pickup, got %v", err)
	}
}
