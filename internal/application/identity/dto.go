package identity

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/google/uuid"
)

// UserResponse is a user in API responses. The password hash never leaves the service.
type UserResponse struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	FullName         string     `json:"fullName"`
	Role             string     `json:"role"`
	Phone            string     `json:"phone,omitempty"`
	PhoneCountryCode string     `json:"phoneCountryCode,omitempty"`
	PhoneNumber      string     `json:"phoneNumber,omitempty"`
	IsActive         bool       `json:"isActive"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ToUserResponse converts a user to its response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		FullName:         u.FullName(),
		Role:             string(u.Role),
		Phone:            u.Phone.String(),
		PhoneCountryCode: u.Phone.CountryCode,
		PhoneNumber:      u.Phone.Number,
		IsActive:         u.IsActive,
		LastLoginAt:      u.LastLoginAt,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// RegisterRequest is the body of POST /auth/register and POST /users
type RegisterRequest struct {
	Email            string `json:"email" binding:"required,email,max=200"`
	Password         string `json:"password" binding:"required,min=8,max=72"`
	FirstName        string `json:"firstName" binding:"max=100"`
	LastName         string `json:"lastName" binding:"max=100"`
	Role             string `json:"role" binding:"omitempty,oneof=admin manager employee viewer"`
	PhoneCountryCode string `json:"phoneCountryCode" binding:"max=6"`
	PhoneNumber      string `json:"phoneNumber" binding:"max=30"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the access token and the signed-in user
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ChangePasswordRequest is the body of PUT /auth/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

// UpdateUserRequest is the body of PUT /users/:id
type UpdateUserRequest struct {
	Email            *string `json:"email" binding:"omitempty,email,max=200"`
	Password         *string `json:"password" binding:"omitempty,min=8,max=72"`
	FirstName        *string `json:"firstName" binding:"omitempty,max=100"`
	LastName         *string `json:"lastName" binding:"omitempty,max=100"`
	Role             *string `json:"role" binding:"omitempty,oneof=admin manager employee viewer"`
	PhoneCountryCode *string `json:"phoneCountryCode" binding:"omitempty,max=6"`
	PhoneNumber      *string `json:"phoneNumber" binding:"omitempty,max=30"`
	IsActive         *bool   `json:"isActive"`
}
