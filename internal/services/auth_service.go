package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/domain/models"
	"jelantahgo/internal/repositories"
	"jelantahgo/internal/utils"
)

type AuthService struct {
	UserRepo  repositories.UserRepository
	JWTSecret []byte
	RequestID string
}

const tokenLifetime = 24 * time.Hour

type RegisterInput struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Password     string   `json:"password"`
	Address      string   `json:"address"`
	Kota         string   `json:"kota"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ReferralCode string   `json:"referralCode"`
}

// Register creates a customer account. A valid referral code links the
// new customer to the referring user, which later drives affiliate
// commissions on their pickups.
func (s AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" {
		return models.User{}, domain.ValidationError{Field: "name", Msg: "wajib diisi"}
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "email tidak valid"}
	}
	if in.Phone == "" {
		return models.User{}, domain.ValidationError{Field: "phone", Msg: "wajib diisi"}
	}
	if len(in.Password) < 6 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "minimal 6 karakter"}
	}

	if exists, err := s.UserRepo.EmailExists(ctx, in.Email); err != nil {
		return models.User{}, err
	} else if exists {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email sudah terdaftar"}
	}
	if exists, err := s.UserRepo.PhoneExists(ctx, in.Phone); err != nil {
		return models.User{}, err
	} else if exists {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "nomor HP sudah terdaftar"}
	}

	var referredByID *int64
	if code := strings.TrimSpace(in.ReferralCode); code != "" {
		ref, err := s.UserRepo.GetByReferralCode(ctx, code)
		if err != nil {
			if domain.IsNotFound(err) {
				return models.User{}, domain.ValidationError{Field: "referralCode", Msg: "kode referral tidak ditemukan"}
			}
			return models.User{}, err
		}
		referredByID = &ref.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal meng-hash password", Err: err}
	}

	code, err := s.newReferralCode(ctx)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Address:      in.Address,
		Kota:         in.Kota,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Role:         domain.RoleCustomer,
		IsActive:     true,
		ReferralCode: code,
		ReferredByID: referredByID,
	}
	if err := s.UserRepo.Create(ctx, &u); err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d email=%s", u.ID, u.Email))
	return u, nil
}

// Login verifies credentials and issues a signed token.
func (s AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, "", domain.UnauthorizedError{Msg: "Email atau password salah"}
		}
		return models.User{}, "", err
	}
	if !u.IsActive {
		return models.User{}, "", domain.UnauthorizedError{Msg: "Akun dinonaktifkan"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", domain.UnauthorizedError{Msg: "Email atau password salah"}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return models.User{}, "", domain.InternalError{Msg: "gagal membuat token", Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d role=%s", u.ID, u.Role))
	return u, signed, nil
}

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randomSuffix() string {
	b := make([]byte, 6)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referralAlphabet))))
		if err != nil {
			b[i] = referralAlphabet[0]
			continue
		}
		b[i] = referralAlphabet[n.Int64()]
	}
	return string(b)
}

// newReferralCode draws random codes until one is unused. The alphabet
// skips lookalike characters so the code survives being read aloud.
func (s AuthService) newReferralCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := "JG-" + randomSuffix()
		exists, err := s.UserRepo.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", domain.InternalError{Msg: "gagal generate kode referral unik"}
}
