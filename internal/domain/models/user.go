package models

import "time"

type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Address      string   `json:"address"`
	Kota         string   `json:"kota"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Role         string   `json:"role"`
	IsActive     bool     `json:"isActive"`
	ReferralCode string   `json:"referralCode"`
	ReferredByID *int64   `json:"referredById,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
