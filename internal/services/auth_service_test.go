package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/repositories"
)

func TestLoginWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(sqlmock.NewRows(userTestColumns).AddRow(
			7, "budi@example.com", string(hash), "Budi", "0811", "", "",
			nil, nil, "CUSTOMER", true, "JG-BUDI77", nil,
			now, now,
		))

	svc := AuthService{
		UserRepo:  repositories.UserRepository{DB: db},
		JWTSecret: []byte("test-secret"),
	}

	_, _, err = svc.Login(context.Background(), "budi@example.com", "salah")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(sqlmock.NewRows(userTestColumns))

	svc := AuthService{
		UserRepo:  repositories.UserRepository{DB: db},
		JWTSecret: []byte("test-secret"),
	}

	_, _, err = svc.Login(context.Background(), "ghost@example.com", "apapun")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	svc := AuthService{UserRepo: repositories.UserRepository{DB: db}}

	_, err = svc.Register(context.Background(), RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Phone:    "0811",
		Password: "rahasia",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestRegisterUnknownReferralCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// email and phone free
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// referral lookup misses
	mock.ExpectQuery("SELECT (.+) FROM users WHERE referral_code=").
		WillReturnRows(sqlmock.NewRows(userTestColumns))

	svc := AuthService{UserRepo: repositories.UserRepository{DB: db}}

	_, err = svc.Register(context.Background(), RegisterInput{
		Name:         "Budi",
		Email:        "budi@example.com",
		Phone:        "0811",
		Password:     "rahasia",
		ReferralCode: "JG-TIDAKADA",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown referral code, got %v", err)
	}
}
