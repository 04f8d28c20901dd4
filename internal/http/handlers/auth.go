package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jelantahgo/internal/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, token, err := authService(c).Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := authService(c).Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registrasi berhasil",
		"user":    user,
	})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	user, err := userService(c).Get(c.Request.Context(), actor.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// PATCH /api/auth/profile
func UpdateProfile(c *gin.Context) {
	actor, ok := MustActor(c)
	if !ok {
		return
	}
	var req services.UpdateProfileInput
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := userService(c).UpdateProfile(c.Request.Context(), actor.UserID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "profil berhasil diperbarui",
		"user":    user,
	})
}
