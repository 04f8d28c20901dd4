package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAssignIsConditionalOnPendingUnassigned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := PickupRepository{DB: db}

	// winner: row matched
	mock.ExpectExec("UPDATE pickups SET status='ASSIGNED'").
		WithArgs(int64(9), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.Assign(context.Background(), 1, 9)
	if err != nil {
		t.Fatalf("assign error: %v", err)
	}
	if !ok {
		t.Fatal("first assign should win")
	}

	// loser: status already flipped, zero rows matched
	mock.ExpectExec("UPDATE pickups SET status='ASSIGNED'").
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.Assign(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("assign error: %v", err)
	}
	if ok {
		t.Fatal("second assign should lose")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateProofOnlyWritesProvidedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := PickupRepository{DB: db}

	proof := "proof.jpg"
	volume := 150.0
	mock.ExpectExec("UPDATE pickups SET photo_proof=(.+), actual_volume=(.+), updated_at=NOW").
		WithArgs(proof, volume, int64(1), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdateProof(context.Background(), 1, 9, ProofUpdate{
		PhotoProof:   &proof,
		ActualVolume: &volume,
	})
	if err != nil {
		t.Fatalf("update proof error: %v", err)
	}
	if !ok {
		t.Fatal("update should match the row")
	}

	// no fields at all is a no-op, no SQL issued
	ok, err = repo.UpdateProof(context.Background(), 1, 9, ProofUpdate{})
	if err != nil || !ok {
		t.Fatalf("empty update should be a successful no-op, ok=%v err=%v", ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
