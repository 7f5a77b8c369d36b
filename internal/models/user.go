package models

import (
	"time"
)

// User roles
const (
	RolePassenger = "passenger"
	RoleOperator  = "operator"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the recognised user roles.
func ValidRole(role string) bool {
	switch role {
	case RolePassenger, RoleOperator, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account (passenger, operator or admin)
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Phone        string    `json:"phone" db:"phone"`
	Address      string    `json:"address" db:"address"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUserRequest is the registration payload
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"omitempty,max=15"`
	Address  string `json:"address" binding:"omitempty,max=255"`
	Role     string `json:"role" binding:"omitempty,oneof=passenger operator admin"`
}

// UpdateUserRequest carries optional profile changes
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=15"`
	Address  *string `json:"address" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// LoginRequest is the credential payload for /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token pair
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user"`
}

// RefreshRequest carries a refresh token for rotation or revocation
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
