package services

import (
	"context"
	"fmt"
	"strings"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/domain/models"
	"jelantahgo/internal/repositories"
	"jelantahgo/internal/utils"
)

// MessageService is the per-pickup chat between the customer, the
// courier and back office.
type MessageService struct {
	MessageRepo repositories.MessageRepository
	PickupRepo  repositories.PickupRepository
	RequestID   string
}

// canAccessThread limits a thread to the pickup's participants; admin sees all.
func canAccessThread(actor domain.RequestContext, p models.Pickup) bool {
	if actor.IsAdmin() {
		return true
	}
	if p.CustomerID == actor.UserID {
		return true
	}
	if p.CourierID != nil && *p.CourierID == actor.UserID {
		return true
	}
	if p.WarehouseID != nil && *p.WarehouseID == actor.UserID {
		return true
	}
	return false
}

// List returns the thread oldest-first and marks the caller's unread
// messages as read. The mark is best-effort, a failure never hides the
// thread itself.
func (s MessageService) List(ctx context.Context, actor domain.RequestContext, pickupID int64) ([]models.Message, error) {
	p, err := s.PickupRepo.GetByID(ctx, pickupID)
	if err != nil {
		return nil, err
	}
	if !canAccessThread(actor, p) {
		return nil, domain.ForbiddenError{Msg: "tidak punya akses ke percakapan pickup ini"}
	}

	msgs, err := s.MessageRepo.ListByPickup(ctx, pickupID)
	if err != nil {
		return nil, err
	}
	if err := s.MessageRepo.MarkReadForReceiver(ctx, pickupID, actor.UserID); err != nil {
		utils.LogEvent(s.RequestID, "message", "mark_read", "gagal tandai pesan terbaca: "+err.Error())
	}
	return msgs, nil
}

type SendMessageInput struct {
	ReceiverID int64  `json:"receiverId"`
	Content    string `json:"content"`
}

func (s MessageService) Send(ctx context.Context, actor domain.RequestContext, pickupID int64, in SendMessageInput) (models.Message, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return models.Message{}, domain.ValidationError{Field: "content", Msg: "pesan tidak boleh kosong"}
	}
	if in.ReceiverID <= 0 {
		return models.Message{}, domain.ValidationError{Field: "receiverId", Msg: "penerima wajib diisi"}
	}

	p, err := s.PickupRepo.GetByID(ctx, pickupID)
	if err != nil {
		return models.Message{}, err
	}
	if !canAccessThread(actor, p) {
		return models.Message{}, domain.ForbiddenError{Msg: "tidak punya akses ke percakapan pickup ini"}
	}

	m := models.Message{
		PickupID:   pickupID,
		SenderID:   actor.UserID,
		ReceiverID: in.ReceiverID,
		Content:    in.Content,
	}
	if err := s.MessageRepo.Create(ctx, &m); err != nil {
		return models.Message{}, err
	}
	utils.LogEvent(s.RequestID, "message", "send",
		fmt.Sprintf("pickup_id=%d sender_id=%d receiver_id=%d", pickupID, actor.UserID, in.ReceiverID))
	return s.MessageRepo.GetByID(ctx, m.ID)
}
