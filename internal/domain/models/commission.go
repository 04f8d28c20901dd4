package models

import "time"

type CommissionType string

const (
	CommissionCourier   CommissionType = "COURIER"
	CommissionAffiliate CommissionType = "AFFILIATE"
)

type CommissionStatus string

const (
	CommissionPending   CommissionStatus = "PENDING"
	CommissionPaid      CommissionStatus = "PAID"
	CommissionCancelled CommissionStatus = "CANCELLED"
)

// Commission is what a courier (always, when assigned) or an affiliate
// (only when the customer has a referrer) earns from a completed pickup.
type Commission struct {
	ID           int64            `json:"id"`
	PickupID     int64            `json:"pickupId"`
	UserID       int64            `json:"userId"`
	Type         CommissionType   `json:"type"`
	Amount       int64            `json:"amount"`
	Status       CommissionStatus `json:"status"`
	PaidDate     *time.Time       `json:"paidDate,omitempty"`
	PaymentProof *string          `json:"paymentProof,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
