package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/repositories"
)

var messageTestColumns = []string{
	"id", "pickup_id",
	"sender_id", "sender_name", "sender_role",
	"receiver_id", "receiver_name", "receiver_role",
	"content", "is_read", "created_at",
}

func newMessageTestService(db *sql.DB) MessageService {
	return MessageService{
		MessageRepo: repositories.MessageRepository{DB: db},
		PickupRepo:  repositories.PickupRepository{DB: db},
	}
}

func TestListMessagesMarksCallerUnreadAsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").
		WillReturnRows(inProgressPickupRow("proof.jpg", 150.0))
	mock.ExpectQuery("SELECT (.+) FROM messages m").
		WillReturnRows(sqlmock.NewRows(messageTestColumns).
			AddRow(1, 1, 9, "Agus", "COURIER", 7, "Budi", "CUSTOMER", "Saya sudah di lokasi", false, now.Add(-2*time.Minute)).
			AddRow(2, 1, 7, "Budi", "CUSTOMER", 9, "Agus", "COURIER", "Baik, ditunggu", true, now))
	mock.ExpectExec("UPDATE messages SET is_read=1").
		WithArgs(int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := newMessageTestService(db)
	actor := domain.RequestContext{UserID: 7, Role: domain.RoleCustomer}

	msgs, err := svc.List(context.Background(), actor, 1)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
	if msgs[0].SenderName != "Agus" || msgs[1].SenderName != "Budi" {
		t.Fatalf("thread out of order: %s then %s", msgs[0].SenderName, msgs[1].SenderName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMessagesHiddenFromNonParticipants(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// pickup #1 belongs to customer #7 and courier #9
	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").
		WillReturnRows(inProgressPickupRow("proof.jpg", 150.0))

	svc := newMessageTestService(db)
	actor := domain.RequestContext{UserID: 8, Role: domain.RoleCustomer}

	_, err = svc.List(context.Background(), actor, 1)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden for outsider, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSendMessageRequiresContentAndReceiver(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := newMessageTestService(db)
	actor := domain.RequestContext{UserID: 7, Role: domain.RoleCustomer}

	if _, err := svc.Send(context.Background(), actor, 1, SendMessageInput{ReceiverID: 9, Content: "   "}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty content, got %v", err)
	}
	if _, err := svc.Send(context.Background(), actor, 1, SendMessageInput{Content: "halo"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing receiver, got %v", err)
	}
}

func TestSendMessageCreatesThreadEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM pickups WHERE id=").
		WillReturnRows(inProgressPickupRow("proof.jpg", 150.0))
	mock.ExpectExec("INSERT INTO messages").
		WithArgs(int64(1), int64(9), int64(7), "Minyak sudah ditimbang").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT (.+) FROM messages m").
		WillReturnRows(sqlmock.NewRows(messageTestColumns).
			AddRow(3, 1, 9, "Agus", "COURIER", 7, "Budi", "CUSTOMER", "Minyak sudah ditimbang", false, now))

	svc := newMessageTestService(db)
	actor := domain.RequestContext{UserID: 9, Role: domain.RoleCourier}

	m, err := svc.Send(context.Background(), actor, 1, SendMessageInput{ReceiverID: 7, Content: "Minyak sudah ditimbang"})
	if err != nil {
		t.Fatalf("send error: %v", err)
	}
	if m.ID != 3 || m.ReceiverName != "Budi" {
		t.Fatalf("unexpected message back: id=%d receiver=%s", m.ID, m.ReceiverName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
