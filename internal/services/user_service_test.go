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

func customerRowWithHash(hash string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userTestColumns).AddRow(
		7, "budi@example.com", hash, "Budi", "0811", "Jl. Melati 1", "Bandung",
		nil, nil, "CUSTOMER", true, "JG-BUDI77", nil,
		now, now,
	)
}

func TestUpdateProfileWrongCurrentPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia-lama"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(customerRowWithHash(string(hash)))

	svc := UserService{UserRepo: repositories.UserRepository{DB: db}}

	_, err = svc.UpdateProfile(context.Background(), 7, UpdateProfileInput{
		CurrentPassword: "tebakan-salah",
		NewPassword:     "rahasia-baru",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for wrong current password, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateProfileChangesContactFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(customerRowWithHash("hash"))
	mock.ExpectExec("UPDATE users SET name=").
		WithArgs("Budi Santoso", "0812", "Jl. Melati 1", "Bandung", nil, nil, "CUSTOMER", true, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(customerRowWithHash("hash"))

	svc := UserService{UserRepo: repositories.UserRepository{DB: db}}

	name := "Budi Santoso"
	phone := "0812"
	if _, err := svc.UpdateProfile(context.Background(), 7, UpdateProfileInput{
		Name:  &name,
		Phone: &phone,
	}); err != nil {
		t.Fatalf("update profile error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateProfilePasswordChangeNeedsCurrent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(customerRowWithHash("hash"))

	svc := UserService{UserRepo: repositories.UserRepository{DB: db}}

	_, err = svc.UpdateProfile(context.Background(), 7, UpdateProfileInput{NewPassword: "rahasia-baru"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error without current password, got %v", err)
	}
}
