package models

import "time"

// Notification is a fire-and-forget event record shown on the user's
// dashboard. Delivery beyond this table is out of scope.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	RelatedID *int64    `json:"relatedId,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification types emitted by the pickup lifecycle.
const (
	NotifPickupRequest    = "PICKUP_REQUEST"
	NotifPickupAssigned   = "PICKUP_ASSIGNED"
	NotifPickupCompleted  = "PICKUP_COMPLETED"
	NotifCommissionEarned = "COMMISSION_EARNED"
	NotifCommissionPaid   = "COMMISSION_PAID"
	NotifPaymentReceived  = "PAYMENT_RECEIVED"
	NotifPaymentDue       = "PAYMENT_DUE"
)
