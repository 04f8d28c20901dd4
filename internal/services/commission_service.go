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

type CommissionService struct {
	DB             *sql.DB
	CommissionRepo repositories.CommissionRepository
	Notif          NotificationService
	RequestID      string
}

// List scopes commissions by role. Couriers and customers (affiliates)
// only see their own; admin and warehouse see everything.
func (s CommissionService) List(ctx context.Context, actor domain.RequestContext, status models.CommissionStatus) ([]models.Commission, error) {
	var userID int64
	if actor.Role == domain.RoleCourier || actor.Role == domain.RoleCustomer {
		userID = actor.UserID
	}
	return s.CommissionRepo.List(ctx, userID, status)
}

func (s CommissionService) Get(ctx context.Context, actor domain.RequestContext, id int64) (models.Commission, error) {
	c, err := s.CommissionRepo.GetByID(ctx, id)
	if err != nil {
		return models.Commission{}, err
	}
	if (actor.Role == domain.RoleCourier || actor.Role == domain.RoleCustomer) && c.UserID != actor.UserID {
		return models.Commission{}, domain.ForbiddenError{Msg: "tidak berhak melihat komisi ini"}
	}
	return c, nil
}

// MarkPaid settles a PENDING commission. Transfer proof is mandatory.
func (s CommissionService) MarkPaid(ctx context.Context, actor domain.RequestContext, id int64, proof string) (models.Commission, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleWarehouse {
		return models.Commission{}, domain.ForbiddenError{Msg: "hanya admin atau gudang yang dapat membayar komisi"}
	}
	if proof == "" {
		return models.Commission{}, domain.ValidationError{Field: "paymentProof", Msg: "bukti transfer wajib diisi"}
	}

	c, err := s.CommissionRepo.GetByID(ctx, id)
	if err != nil {
		return models.Commission{}, err
	}
	if c.Status != models.CommissionPending {
		return models.Commission{}, domain.InvalidStateError{Resource: "commission", Msg: "komisi sudah tidak berstatus PENDING"}
	}

	ok, err := s.CommissionRepo.MarkPaid(ctx, id, proof, time.Now())
	if err != nil {
		return models.Commission{}, err
	}
	if !ok {
		return models.Commission{}, domain.ConflictError{Resource: "commission", Msg: "komisi sudah diproses permintaan lain"}
	}
	utils.LogEvent(s.RequestID, "commission", "mark_paid", fmt.Sprintf("commission_id=%d amount=%d", id, c.Amount))

	s.Notif.CommissionPaid(ctx, id, c.UserID, c.Amount)
	return s.CommissionRepo.GetByID(ctx, id)
}

func (s CommissionService) Cancel(ctx context.Context, actor domain.RequestContext, id int64) (models.Commission, error) {
	if actor.Role != domain.RoleAdmin {
		return models.Commission{}, domain.ForbiddenError{Msg: "hanya admin yang dapat membatalkan komisi"}
	}

	c, err := s.CommissionRepo.GetByID(ctx, id)
	if err != nil {
		return models.Commission{}, err
	}
	if c.Status != models.CommissionPending {
		return models.Commission{}, domain.InvalidStateError{Resource: "commission", Msg: "komisi sudah tidak berstatus PENDING"}
	}

	ok, err := s.CommissionRepo.MarkCancelled(ctx, id)
	if err != nil {
		return models.Commission{}, err
	}
	if !ok {
		return models.Commission{}, domain.ConflictError{Resource: "commission", Msg: "komisi sudah diproses permintaan lain"}
	}
	utils.LogEvent(s.RequestID, "commission", "cancel", fmt.Sprintf("commission_id=%d", id))
	return s.CommissionRepo.GetByID(ctx, id)
}
