package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/domain/models"
	"jelantahgo/internal/repositories"
	"jelantahgo/internal/utils"
)

// UserService is the admin-facing account management surface.
type UserService struct {
	UserRepo  repositories.UserRepository
	RequestID string
}

var validRoles = map[string]bool{
	domain.RoleAdmin:     true,
	domain.RoleCustomer:  true,
	domain.RoleCourier:   true,
	domain.RoleWarehouse: true,
}

type CreateUserInput struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Password  string   `json:"password"`
	Address   string   `json:"address"`
	Kota      string   `json:"kota"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Role      string   `json:"role"`
}

// Create lets an admin provision accounts of any role, typically
// couriers and warehouse staff who never self-register.
func (s UserService) Create(ctx context.Context, in CreateUserInput) (models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))

	if strings.TrimSpace(in.Name) == "" {
		return models.User{}, domain.ValidationError{Field: "name", Msg: "wajib diisi"}
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "email tidak valid"}
	}
	if len(in.Password) < 6 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "minimal 6 karakter"}
	}
	if !validRoles[in.Role] {
		return models.User{}, domain.ValidationError{Field: "role", Msg: "role tidak dikenal"}
	}

	if exists, err := s.UserRepo.EmailExists(ctx, in.Email); err != nil {
		return models.User{}, err
	} else if exists {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email sudah terdaftar"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal meng-hash password", Err: err}
	}

	u := models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      in.Address,
		Kota:         in.Kota,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Role:         in.Role,
		IsActive:     true,
		ReferralCode: fmt.Sprintf("JG-STAFF-%s", strings.ToUpper(randomSuffix())),
	}
	if err := s.UserRepo.Create(ctx, &u); err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "user", "create", fmt.Sprintf("user_id=%d role=%s", u.ID, u.Role))
	return u, nil
}

func (s UserService) List(ctx context.Context, role string) ([]models.User, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role != "" && !validRoles[role] {
		return nil, domain.ValidationError{Field: "role", Msg: "role tidak dikenal"}
	}
	return s.UserRepo.List(ctx, role)
}

func (s UserService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.UserRepo.GetByID(ctx, id)
}

type UpdateUserInput struct {
	Name      *string  `json:"name"`
	Phone     *string  `json:"phone"`
	Address   *string  `json:"address"`
	Kota      *string  `json:"kota"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Role      *string  `json:"role"`
	IsActive  *bool    `json:"isActive"`
}

func (s UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (models.User, error) {
	u, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	if in.Kota != nil {
		u.Kota = *in.Kota
	}
	if in.Latitude != nil {
		u.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		u.Longitude = in.Longitude
	}
	if in.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*in.Role))
		if !validRoles[role] {
			return models.User{}, domain.ValidationError{Field: "role", Msg: "role tidak dikenal"}
		}
		u.Role = role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}

	if err := s.UserRepo.Update(ctx, u); err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "user", "update", fmt.Sprintf("user_id=%d", id))
	return s.UserRepo.GetByID(ctx, id)
}

type UpdateProfileInput struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	Kota            *string `json:"kota"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

// UpdateProfile is the self-service edit: contact fields plus an
// optional password change that requires the current password to match.
// Role and active flag stay admin-only.
func (s UserService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (models.User, error) {
	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil && strings.TrimSpace(*in.Phone) != "" {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	if in.Kota != nil {
		u.Kota = *in.Kota
	}

	if in.NewPassword != "" {
		if in.CurrentPassword == "" {
			return models.User{}, domain.ValidationError{Field: "currentPassword", Msg: "wajib diisi untuk ganti password"}
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return models.User{}, domain.ValidationError{Field: "currentPassword", Msg: "password saat ini salah"}
		}
		if len(in.NewPassword) < 6 {
			return models.User{}, domain.ValidationError{Field: "newPassword", Msg: "minimal 6 karakter"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, domain.InternalError{Msg: "gagal meng-hash password", Err: err}
		}
		if err := s.UserRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
			return models.User{}, err
		}
	}

	if err := s.UserRepo.Update(ctx, u); err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "user", "update_profile", fmt.Sprintf("user_id=%d", userID))
	return s.UserRepo.GetByID(ctx, userID)
}

// Deactivate soft-deletes; the row stays for referral and ledger history.
func (s UserService) Deactivate(ctx context.Context, id int64) error {
	if err := s.UserRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "user", "deactivate", fmt.Sprintf("user_id=%d", id))
	return nil
}
