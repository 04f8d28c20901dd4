package models

import "time"

// Message is one chat line between participants of a pickup (customer,
// courier, warehouse, admin). Listing a thread marks the caller's
// unread messages as read.
type Message struct {
	ID       int64 `json:"id"`
	PickupID int64 `json:"pickupId"`

	SenderID   int64  `json:"senderId"`
	SenderName string `json:"senderName"`
	SenderRole string `json:"senderRole"`

	ReceiverID   int64  `json:"receiverId"`
	ReceiverName string `json:"receiverName"`
	ReceiverRole string `json:"receiverRole"`

	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
