package models

import "time"

type PickupStatus string

const (
	PickupPending    PickupStatus = "PENDING"
	PickupAssigned   PickupStatus = "ASSIGNED"
	PickupInProgress PickupStatus = "IN_PROGRESS"
	PickupCompleted  PickupStatus = "COMPLETED"
	PickupCancelled  PickupStatus = "CANCELLED"
)

type Pickup struct {
	ID          int64        `json:"id"`
	CustomerID  int64        `json:"customerId"`
	CourierID   *int64       `json:"courierId,omitempty"`
	WarehouseID *int64       `json:"warehouseId,omitempty"`
	Status      PickupStatus `json:"status"`

	ScheduledDate time.Time  `json:"scheduledDate"`
	ActualDate    *time.Time `json:"actualDate,omitempty"`

	// Volume is the customer's estimate at creation; ActualVolume is what
	// the courier measured on site. Money fields hold the estimate until
	// completion recomputes them from ActualVolume.
	Volume        float64  `json:"volume"`
	ActualVolume  *float64 `json:"actualVolume,omitempty"`
	PricePerLiter int64    `json:"pricePerLiter"`
	TotalPrice    int64    `json:"totalPrice"`
	CourierFee    int64    `json:"courierFee"`
	AffiliateFee  int64    `json:"affiliateFee"`

	PhotoProof    *string `json:"photoProof,omitempty"`
	BankName      *string `json:"bankName,omitempty"`
	AccountName   *string `json:"accountName,omitempty"`
	AccountNumber *string `json:"accountNumber,omitempty"`
	Notes         string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// pickupTransitions is the lifecycle flow as code; every status change
// is validated against it before any write.
var pickupTransitions = map[PickupStatus][]PickupStatus{
	PickupPending:    {PickupAssigned, PickupCancelled},
	PickupAssigned:   {PickupInProgress},
	PickupInProgress: {PickupCompleted},
}

func CanTransition(from, to PickupStatus) bool {
	for _, s := range pickupTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition leaves the status.
func (s PickupStatus) Terminal() bool {
	return s == PickupCompleted || s == PickupCancelled
}
