package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jelantahgo/internal/services"
)

// GET /api/users?role=COURIER
func GetUsers(c *gin.Context) {
	users, err := userService(c).List(c.Request.Context(), c.Query("role"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := userService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /api/users
func CreateUser(c *gin.Context) {
	var req services.CreateUserInput
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := userService(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateUserInput
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := userService(c).Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DELETE /api/users/:id (soft delete)
func DeleteUser(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := userService(c).Deactivate(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user dinonaktifkan"})
}
