package models

import "time"

type BillStatus string

const (
	BillUnpaid    BillStatus = "UNPAID"
	BillPaid      BillStatus = "PAID"
	BillCancelled BillStatus = "CANCELLED"
	BillOverdue   BillStatus = "OVERDUE"
)

// Bill is the customer-side invoice created exactly once when a pickup
// completes through the courier path.
type Bill struct {
	ID            int64      `json:"id"`
	PickupID      int64      `json:"pickupId"`
	UserID        int64      `json:"userId"`
	Amount        int64      `json:"amount"`
	Status        BillStatus `json:"status"`
	DueDate       time.Time  `json:"dueDate"`
	PaidDate      *time.Time `json:"paidDate,omitempty"`
	InvoiceNumber string     `json:"invoiceNumber"`
	PaymentProof  *string    `json:"paymentProof,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
