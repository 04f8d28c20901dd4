package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/domain/models"
	"jelantahgo/internal/repositories"
	"jelantahgo/internal/utils"
)

type BillService struct {
	DB        *sql.DB
	BillRepo  repositories.BillRepository
	Notif     NotificationService
	RequestID string
}

// List returns bills scoped to the caller. The back-office listing
// doubles as the lazy overdue sweep so admin never sees stale UNPAID
// rows past their due date.
func (s BillService) List(ctx context.Context, actor domain.RequestContext, status models.BillStatus) ([]models.Bill, error) {
	userID := actor.UserID
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleWarehouse:
		userID = 0
		if n, err := s.BillRepo.SweepOverdue(ctx, time.Now()); err != nil {
			utils.LogEvent(s.RequestID, "bill", "sweep_overdue", "gagal sweep: "+err.Error())
		} else if n > 0 {
			utils.LogEvent(s.RequestID, "bill", "sweep_overdue", fmt.Sprintf("%d tagihan jatuh tempo", n))
		}
	}
	return s.BillRepo.List(ctx, userID, status)
}

func (s BillService) Get(ctx context.Context, actor domain.RequestContext, id int64) (models.Bill, error) {
	b, err := s.BillRepo.GetByID(ctx, id)
	if err != nil {
		return models.Bill{}, err
	}
	if actor.Role == domain.RoleCustomer && b.UserID != actor.UserID {
		return models.Bill{}, domain.ForbiddenError{Msg: "tidak berhak melihat tagihan ini"}
	}
	return b, nil
}

// ConfirmPaid marks a bill PAID. Proof of payment is mandatory; paying
// an already settled or cancelled bill is an invalid state, not a retry.
func (s BillService) ConfirmPaid(ctx context.Context, actor domain.RequestContext, id int64, proof string) (models.Bill, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleWarehouse {
		return models.Bill{}, domain.ForbiddenError{Msg: "hanya admin atau gudang yang dapat konfirmasi pembayaran"}
	}
	if proof == "" {
		return models.Bill{}, domain.ValidationError{Field: "paymentProof", Msg: "bukti pembayaran wajib diisi"}
	}

	b, err := s.BillRepo.GetByID(ctx, id)
	if err != nil {
		return models.Bill{}, err
	}
	if b.Status == models.BillPaid || b.Status == models.BillCancelled {
		return models.Bill{}, domain.InvalidStateError{Resource: "bill", Msg: "tagihan sudah tidak dapat dibayar"}
	}

	ok, err := s.BillRepo.MarkPaid(ctx, id, proof, time.Now())
	if err != nil {
		return models.Bill{}, err
	}
	if !ok {
		return models.Bill{}, domain.ConflictError{Resource: "bill", Msg: "tagihan sudah diproses permintaan lain"}
	}
	utils.LogEvent(s.RequestID, "bill", "confirm_paid", fmt.Sprintf("bill_id=%d invoice=%s", id, b.InvoiceNumber))

	s.Notif.PaymentReceived(ctx, id, b.UserID, b.InvoiceNumber)
	return s.BillRepo.GetByID(ctx, id)
}

func (s BillService) Cancel(ctx context.Context, actor domain.RequestContext, id int64) (models.Bill, error) {
	if actor.Role != domain.RoleAdmin {
		return models.Bill{}, domain.ForbiddenError{Msg: "hanya admin yang dapat membatalkan tagihan"}
	}

	b, err := s.BillRepo.GetByID(ctx, id)
	if err != nil {
		return models.Bill{}, err
	}
	if b.Status == models.BillPaid || b.Status == models.BillCancelled {
		return models.Bill{}, domain.InvalidStateError{Resource: "bill", Msg: "tagihan sudah tidak dapat dibatalkan"}
	}

	ok, err := s.BillRepo.MarkCancelled(ctx, id)
	if err != nil {
		return models.Bill{}, err
	}
	if !ok {
		return models.Bill{}, domain.ConflictError{Resource: "bill", Msg: "tagihan sudah diproses permintaan lain"}
	}
	utils.LogEvent(s.RequestID, "bill", "cancel", fmt.Sprintf("bill_id=%d", id))
	return s.BillRepo.GetByID(ctx, id)
}
