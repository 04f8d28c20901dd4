package services

import (
	"context"
	"fmt"

	"jelantahgo/internal/domain/models"
	"jelantahgo/internal/repositories"
	"jelantahgo/internal/utils"
)

// NotificationService records dashboard notifications. Every method is
// best-effort: a failed insert is logged and swallowed so it can never
// roll back the transition that triggered it.
type NotificationService struct {
	NotifRepo repositories.NotificationRepository
	RequestID string
}

func (s NotificationService) notify(ctx context.Context, userID int64, title, message, kind string, relatedID int64) {
	n := models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      kind,
		RelatedID: &relatedID,
	}
	if err := s.NotifRepo.Create(ctx, &n); err != nil {
		utils.LogEvent(s.RequestID, "notification", "create", "gagal simpan notifikasi: "+err.Error())
	}
}

func (s NotificationService) PickupCreated(ctx context.Context, pickupID, customerID int64) {
	s.notify(ctx, customerID,
		"Pickup Berhasil Dibuat",
		"Permintaan pickup Anda telah berhasil dibuat dan menunggu kurir",
		models.NotifPickupRequest, pickupID)
}

func (s NotificationService) PickupAssigned(ctx context.Context, pickupID, customerID, courierID int64) {
	s.notify(ctx, customerID,
		"Kurir Ditugaskan",
		"Kurir telah ditugaskan untuk pickup Anda",
		models.NotifPickupAssigned, pickupID)
	s.notify(ctx, courierID,
		"Pickup Baru",
		"Anda telah ditugaskan untuk pickup baru",
		models.NotifPickupAssigned, pickupID)
}

func (s NotificationService) PickupCompleted(ctx context.Context, pickupID, customerID, courierID int64, invoiceNumber string) {
	s.notify(ctx, customerID,
		"Pickup Selesai",
		fmt.Sprintf("Pickup minyak jelantah Anda telah selesai. Invoice: %s", invoiceNumber),
		models.NotifPickupCompleted, pickupID)
	s.notify(ctx, courierID,
		"Komisi Tersedia",
		"Anda telah mendapatkan komisi dari pickup",
		models.NotifCommissionEarned, pickupID)
}

func (s NotificationService) PaymentReceived(ctx context.Context, billID, customerID int64, invoiceNumber string) {
	s.notify(ctx, customerID,
		"Pembayaran Diterima",
		fmt.Sprintf("Pembayaran tagihan %s telah diterima", invoiceNumber),
		models.NotifPaymentReceived, billID)
}

func (s NotificationService) CommissionPaid(ctx context.Context, commissionID, userID, amount int64) {
	s.notify(ctx, userID,
		"Komisi Dibayarkan",
		fmt.Sprintf("Komisi sebesar %s telah dibayarkan", utils.FormatRupiah(amount)),
		models.NotifCommissionPaid, commissionID)
}
