package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMarkPaidOnlyTouchesPayableBills(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := BillRepository{DB: db}
	now := time.Now()

	mock.ExpectExec("UPDATE bills SET status='PAID'").
		WithArgs(now, "bukti.jpg", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.MarkPaid(context.Background(), 3, "bukti.jpg", now)
	if err != nil {
		t.Fatalf("mark paid error: %v", err)
	}
	if !ok {
		t.Fatal("payable bill should be marked")
	}

	// already paid or cancelled: no row matches
	mock.ExpectExec("UPDATE bills SET status='PAID'").
		WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.MarkPaid(context.Background(), 3, "bukti.jpg", now)
	if err != nil {
		t.Fatalf("mark paid error: %v", err)
	}
	if ok {
		t.Fatal("settled bill should not be marked again")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSweepOverdueCountsFlippedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := BillRepository{DB: db}
	now := time.Now()

	mock.ExpectExec("UPDATE bills SET status='OVERDUE'").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.SweepOverdue(context.Background(), now)
	if err != nil {
		t.Fatalf("sweep error: %v", err)
	}
	if n != 4 {
		t.Fatalf("swept %d rows, want 4", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
