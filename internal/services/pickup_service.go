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

// PickupService owns the pickup lifecycle. Every transition is guarded
// by actor role plus a conditional update keyed on the expected prior
// status; losing the conditional update surfaces as a conflict, never
// as silent success.
type PickupService struct {
	DB             *sql.DB
	PickupRepo     repositories.PickupRepository
	UserRepo       repositories.UserRepository
	BillRepo       repositories.BillRepository
	CommissionRepo repositories.CommissionRepository
	Pricing        PricingService
	Notif          NotificationService
	RequestID      string
}

const billDueIn = 7 * 24 * time.Hour

type CreatePickupInput struct {
	// CustomerID is the admin on-behalf target; ignored for customers.
	CustomerID    int64   `json:"customerId"`
	ScheduledDate string  `json:"scheduledDate"` // YYYY-MM-DD
	Volume        float64 `json:"volume"`        // estimated liters
	Notes         string  `json:"notes"`
}

// Create registers a new PENDING pickup with estimated money fields.
// Customers create for themselves; admins must name a customer.
func (s PickupService) Create(ctx context.Context, actor domain.RequestContext, in CreatePickupInput) (models.Pickup, error) {
	var customerID int64
	switch actor.Role {
	case domain.RoleCustomer:
		customerID = actor.UserID
	case domain.RoleAdmin:
		if in.CustomerID <= 0 {
			return models.Pickup{}, domain.ValidationError{Field: "customerId", Msg: "wajib diisi untuk pickup oleh admin"}
		}
		customerID = in.CustomerID
	default:
		return models.Pickup{}, domain.ForbiddenError{Msg: "hanya customer atau admin yang dapat membuat pickup"}
	}

	if in.Volume <= 0 {
		return models.Pickup{}, domain.ValidationError{Field: "volume", Msg: "harus lebih dari 0"}
	}
	scheduled, err := utils.ParseDate(in.ScheduledDate)
	if err != nil {
		return models.Pickup{}, domain.ValidationError{Field: "scheduledDate", Msg: "format tanggal tidak valid", Err: err}
	}

	customer, err := s.UserRepo.GetByID(ctx, customerID)
	if err != nil {
		return models.Pickup{}, err
	}
	if customer.Role != domain.RoleCustomer {
		return models.Pickup{}, domain.ValidationError{Field: "customerId", Msg: "bukan akun customer"}
	}

	snap, err := s.Pricing.Snapshot(ctx)
	if err != nil {
		return models.Pickup{}, err
	}
	est := BreakdownFrom(snap, in.Volume)

	p := models.Pickup{
		CustomerID:    customerID,
		Status:        models.PickupPending,
		ScheduledDate: scheduled,
		Volume:        in.Volume,
		PricePerLiter: est.PricePerLiter,
		TotalPrice:    est.TotalPrice,
		CourierFee:    est.CourierCommission,
		Notes:         in.Notes,
	}
	// Estimated affiliate fee only applies when the customer was referred.
	if customer.ReferredByID != nil {
		p.AffiliateFee = est.AffiliateCommission
	}

	if err := s.PickupRepo.Create(ctx, &p); err != nil {
		return models.Pickup{}, err
	}
	utils.LogEvent(s.RequestID, "pickup", "create",
		fmt.Sprintf("pickup_id=%d customer_id=%d volume=%.1f", p.ID, customerID, in.Volume))

	s.Notif.PickupCreated(ctx, p.ID, customerID)
	return p, nil
}

// List returns pickups visible to the actor's role.
func (s PickupService) List(ctx context.Context, actor domain.RequestContext, status models.PickupStatus) ([]models.Pickup, error) {
	f := repositories.PickupFilter{Status: status}
	switch actor.Role {
	case domain.RoleCustomer:
		f.CustomerID = actor.UserID
	case domain.RoleCourier:
		f.CourierVisible = actor.UserID
	case domain.RoleWarehouse:
		f.WarehouseView = true
	}
	return s.PickupRepo.List(ctx, f)
}

func (s PickupService) Get(ctx context.Context, actor domain.RequestContext, id int64) (models.Pickup, error) {
	p, err := s.PickupRepo.GetByID(ctx, id)
	if err != nil {
		return models.Pickup{}, err
	}
	if !s.canSee(actor, p) {
		return models.Pickup{}, domain.ForbiddenError{Msg: "tidak berhak melihat pickup ini"}
	}
	return p, nil
}

func (s PickupService) canSee(actor domain.RequestContext, p models.Pickup) bool {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleWarehouse:
		return true
	case domain.RoleCustomer:
		return p.CustomerID == actor.UserID
	case domain.RoleCourier:
		if p.CourierID != nil {
			return *p.CourierID == actor.UserID
		}
		return p.Status == models.PickupPending
	}
	return false
}

// Accept claims a PENDING pickup for the acting courier. Two couriers
// racing on the same pickup resolve in the database: exactly one wins,
// the other gets a conflict.
func (s PickupService) Accept(ctx context.Context, actor domain.RequestContext, id int64) (models.Pickup, error) {
	if actor.Role != domain.RoleCourier {
		return models.Pickup{}, domain.ForbiddenError{Msg: "hanya kurir yang dapat menerima pickup"}
	}
	p, err := s.PickupRepo.GetByID(ctx, id)
	if err != nil {
		return models.Pickup{}, err
	}
	if !models.CanTransition(p.Status, models.PickupAssigned) {
		return models.Pickup{}, domain.InvalidStateError{Resource: "pickup", Msg: "pickup tidak lagi menunggu kurir"}
	}

	ok, err := s.PickupRepo.Assign(ctx, id, actor.UserID)
	if err != nil {
		return models.Pickup{}, err
	}
	if !ok {
		return models.Pickup{}, domain.ConflictError{Resource: "pickup", Msg: "pickup sudah diambil kurir lain"}
	}
	utils.LogEvent(s.RequestID, "pickup", "accept", fmt.Sprintf("pickup_id=%d courier_id=%d", id, actor.UserID))

	s.Notif.PickupAssigned(ctx, id, p.CustomerID, actor.UserID)
	return s.PickupRepo.GetByID(ctx, id)
}

// Start moves an ASSIGNED pickup into IN_PROGRESS and stamps the actual date.
func (s PickupService) Start(ctx context.Context, actor domain.RequestContext, id int64) (models.Pickup, error) {
	if actor.Role != domain.RoleCourier {
		return models.Pickup{}, domain.ForbiddenError{Msg: "hanya kurir yang dapat memulai pickup"}
	}
	p, err := s.PickupRepo.GetByID(ctx, id)
	if err != nil {
		return models.Pickup{}, err
	}
	if p.CourierID == nil || *p.CourierID != actor.UserID {
		return models.Pickup{}, domain.ForbiddenError{Msg: "hanya kurir yang ditugaskan yang dapat memulai pickup ini"}
	}
	if !models.CanTransition(p.Status, models.PickupInProgress) {
		return models.Pickup{}, domain.InvalidStateError{Resource: "pickup", Msg: "pickup belum berstatus ASSIGNED"}
	}

	ok, err := s.PickupRepo.Start(ctx, id, actor.UserID, time.Now())
	if err != nil {
		return models.Pickup{}, err
	}
	if !ok {
		return models.Pickup{}, domain.ConflictError{Resource: "pickup", Msg: "status pickup berubah, coba muat ulang"}
	}
	utils.LogEvent(s.RequestID, "pickup", "start", fmt.Sprintf("pickup_id=%d", id))
	return s.PickupRepo.GetByID(ctx, id)
}

// UpdateProof lets the assigned courier record photo proof, measured
// volume and payout details while the pickup is IN_PROGRESS.
func (s PickupService) UpdateProof(ctx context.Context, actor domain.RequestContext, id int64, u repositories.ProofUpdate) (models.Pickup, error) {
	if actor.Role != domain.RoleCourier {
		return models.Pickup{}, domain.ForbiddenError{Msg: "hanya kurir yang dapat mengubah bukti pickup"}
	}
	if u.ActualVolume != nil && *u.ActualVolume <= 0 {
		return models.Pickup{}, domain.ValidationError{Field: "actualVolume", Msg: "harus lebih dari 0"}
	}
	p, err := s.PickupRepo.GetByID(ctx, id)
	if err != nil {
		return models.Pickup{}, err
	}
	if p.CourierID == nil || *p.CourierID != actor.UserID {
		return models.Pickup{}, domain.ForbiddenError{Msg: "hanya kurir yang ditugaskan yang dapat mengubah pickup ini"}
	}
	if p.Status != models.PickupInProgress {
		return models.Pickup{}, domain.InvalidStateError{Resource: "pickup", Msg: "bukti hanya dapat diubah saat pickup berjalan"}
	}
	if u.Empty() {
		return models.Pickup{}, domain.ValidationError{Msg: "tidak ada field yang diubah"}
	}

	ok, err := s.PickupRepo.UpdateProof(ctx, id, actor.UserID, u)
	if err != nil {
		return models.Pickup{}, err
	}
	if !ok {
		return models.Pickup{}, domain.ConflictError{Resource: "pickup", Msg: "status pickup berubah, coba muat ulang"}
	}
	return s.PickupRepo.GetByID(ctx, id)
}

// Complete settles an IN_PROGRESS pickup: money fields are recomputed
// from the measured volume with the settings in force right now, and
// the bill plus commissions commit atomically with the status flip.
func (s PickupService) Complete(ctx context.Context, actor domain.RequestContext, id int64) (models.Pickup, error) {
	if actor.Role != domain.RoleCourier {
		return models.Pickup{}, domain.ForbiddenError{Msg: "hanya kurir yang dapat menyelesaikan pickup"}
	}
	p, err := s.PickupRepo.GetByID(ctx, id)
	if err != nil {
		return models.Pickup{}, err
	}
	if p.CourierID == nil || *p.CourierID != actor.UserID {
		return models.Pickup{}, domain.ForbiddenError{Msg: "hanya kurir yang ditugaskan yang dapat menyelesaikan pickup ini"}
	}
	if !models.CanTransition(p.Status, models.PickupCompleted) {
		return models.Pickup{}, domain.InvalidStateError{Resource: "pickup", Msg: "pickup tidak dalam status IN_PROGRESS"}
	}
	if p.PhotoProof == nil || *p.PhotoProof == "" {
		return models.Pickup{}, domain.ValidationError{Field: "photoProof", Msg: "unggah foto bukti terlebih dahulu"}
	}
	if p.ActualVolume == nil || *p.ActualVolume <= 0 {
		return models.Pickup{}, domain.ValidationError{Field: "actualVolume", Msg: "isi volume aktual terlebih dahulu"}
	}

	customer, err := s.UserRepo.GetByID(ctx, p.CustomerID)
	if err != nil {
		return models.Pickup{}, err
	}

	// Settlement uses the rates in force at completion time, not the
	// ones cached on the row at creation.
	snap, err := s.Pricing.Snapshot(ctx)
	if err != nil {
		return models.Pickup{}, err
	}
	final := BreakdownFrom(snap, *p.ActualVolume)

	completion := repositories.CompletionUpdate{
		PricePerLiter: final.PricePerLiter,
		TotalPrice:    final.TotalPrice,
		CourierFee:    final.CourierCommission,
	}
	if customer.ReferredByID != nil {
		completion.AffiliateFee = final.AffiliateCommission
	}

	now := time.Now()
	invoiceNumber := fmt.Sprintf("INV-%d", now.UnixMilli())

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Pickup{}, err
	}
	defer func() { _ = tx.Rollback() }()

	ok, err := s.PickupRepo.Complete(ctx, tx, id, actor.UserID, completion)
	if err != nil {
		return models.Pickup{}, err
	}
	if !ok {
		return models.Pickup{}, domain.ConflictError{Resource: "pickup", Msg: "pickup sudah diproses permintaan lain"}
	}

	bill := models.Bill{
		PickupID:      id,
		UserID:        p.CustomerID,
		Amount:        completion.TotalPrice,
		Status:        models.BillUnpaid,
		DueDate:       now.Add(billDueIn),
		InvoiceNumber: invoiceNumber,
	}
	if err := s.BillRepo.Create(ctx, tx, &bill); err != nil {
		return models.Pickup{}, domain.InternalError{Msg: "gagal membuat tagihan", Err: err}
	}

	courierCommission := models.Commission{
		PickupID: id,
		UserID:   actor.UserID,
		Type:     models.CommissionCourier,
		Amount:   completion.CourierFee,
		Status:   models.CommissionPending,
	}
	if err := s.CommissionRepo.Create(ctx, tx, &courierCommission); err != nil {
		return models.Pickup{}, domain.InternalError{Msg: "gagal membuat komisi kurir", Err: err}
	}

	if customer.ReferredByID != nil {
		affiliateCommission := models.Commission{
			PickupID: id,
			UserID:   *customer.ReferredByID,
			Type:     models.CommissionAffiliate,
			Amount:   completion.AffiliateFee,
			Status:   models.CommissionPending,
		}
		if err := s.CommissionRepo.Create(ctx, tx, &affiliateCommission); err != nil {
			return models.Pickup{}, domain.InternalError{Msg: "gagal membuat komisi affiliate", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Pickup{}, domain.InternalError{Msg: "gagal commit penyelesaian pickup", Err: err}
	}
	utils.LogEvent(s.RequestID, "pickup", "complete",
		fmt.Sprintf("pickup_id=%d invoice=%s total=%d", id, invoiceNumber, completion.TotalPrice))

	// Notifications are a side channel; failures here never undo the commit.
	s.Notif.PickupCompleted(ctx, id, p.CustomerID, actor.UserID, invoiceNumber)

	return s.PickupRepo.GetByID(ctx, id)
}

// CompleteByWarehouse marks receipt at the warehouse without creating
// any bill or commission.
//
// Deprecated: legacy flow that bypasses billing; the courier Complete
// path is the supported way to finish a pickup.
func (s PickupService) CompleteByWarehouse(ctx context.Context, actor domain.RequestContext, id int64) (models.Pickup, error) {
	if actor.Role != domain.RoleWarehouse {
		return models.Pickup{}, domain.ForbiddenError{Msg: "hanya gudang yang dapat konfirmasi penerimaan"}
	}
	p, err := s.PickupRepo.GetByID(ctx, id)
	if err != nil {
		return models.Pickup{}, err
	}
	if p.Status.Terminal() {
		return models.Pickup{}, domain.InvalidStateError{Resource: "pickup", Msg: "pickup sudah selesai atau dibatalkan"}
	}

	ok, err := s.PickupRepo.CompleteByWarehouse(ctx, id, actor.UserID)
	if err != nil {
		return models.Pickup{}, err
	}
	if !ok {
		return models.Pickup{}, domain.ConflictError{Resource: "pickup", Msg: "pickup sudah diproses permintaan lain"}
	}
	utils.LogEvent(s.RequestID, "pickup", "complete_warehouse", fmt.Sprintf("pickup_id=%d warehouse_id=%d", id, actor.UserID))
	return s.PickupRepo.GetByID(ctx, id)
}

// Cancel is only legal from PENDING, by the owning customer or an admin.
func (s PickupService) Cancel(ctx context.Context, actor domain.RequestContext, id int64) (models.Pickup, error) {
	p, err := s.PickupRepo.GetByID(ctx, id)
	if err != nil {
		return models.Pickup{}, err
	}
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleCustomer:
		if p.CustomerID != actor.UserID {
			return models.Pickup{}, domain.ForbiddenError{Msg: "hanya pemilik pickup yang dapat membatalkan"}
		}
	default:
		return models.Pickup{}, domain.ForbiddenError{Msg: "hanya customer atau admin yang dapat membatalkan pickup"}
	}
	if !models.CanTransition(p.Status, models.PickupCancelled) {
		return models.Pickup{}, domain.InvalidStateError{Resource: "pickup", Msg: "pickup hanya dapat dibatalkan saat PENDING"}
	}

	ok, err := s.PickupRepo.Cancel(ctx, id)
	if err != nil {
		return models.Pickup{}, err
	}
	if !ok {
		return models.Pickup{}, domain.ConflictError{Resource: "pickup", Msg: "pickup sudah diproses permintaan lain"}
	}
	utils.LogEvent(s.RequestID, "pickup", "cancel", fmt.Sprintf("pickup_id=%d by=%d", id, actor.UserID))
	return s.PickupRepo.GetByID(ctx, id)
}
