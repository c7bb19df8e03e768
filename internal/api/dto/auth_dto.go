package dto

import (
	"time"

	"github.com/ricardo-aragon/ticashop-desk/internal/auth"
	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse grants a desk session token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse is the canonical operator identity.
type UserResponse struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Name        string      `json:"name"`
	Role        domain.Role `json:"role"`
	Avatar      string      `json:"avatar"`
	Permissions []string    `json:"permissions"`
}

// MeResponse adds the panels the operator may open.
type MeResponse struct {
	User  UserResponse `json:"user"`
	Views []auth.View  `json:"views"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Name:        user.Name,
		Role:        user.Role,
		Avatar:      user.Avatar,
		Permissions: user.Permissions,
	}
}
