package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefreshToken is a persisted refresh token keyed by user email. Revocation
// deletes the row; rotation replaces it.
type RefreshToken struct {
	ID         string    `json:"id" db:"id"`
	Token      string    `json:"token" db:"token"`
	Email      string    `json:"email" db:"email"`
	ExpiryDate time.Time `json:"expiry_date" db:"expiry_date"`
}

// AdminAction is an append-only audit row for administrative mutations
type AdminAction struct {
	ID              string    `json:"id" db:"id"`
	AdminID         string    `json:"admin_id" db:"admin_id"`
	ActionType      string    `json:"action_type" db:"action_type"`
	Details         string    `json:"details" db:"details"`
	ActionTimestamp time.Time `json:"action_timestamp" db:"action_timestamp"`
}

// AssignRoleRequest changes a user's role
type AssignRoleRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"required,oneof=passenger operator admin"`
}

// GenerateReportsRequest filters the booking report. All fields optional.
type GenerateReportsRequest struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Route     string     `json:"route"`    // "Origin-Destination"
	Operator  string     `json:"operator"` // operator name
}

// Report aggregates non-cancelled bookings for the admin dashboard
type Report struct {
	TotalBookings  int             `json:"total_bookings"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	Route          string          `json:"route,omitempty"`
	Operator       string          `json:"operator,omitempty"`
	BookingDetails []BookingDetail `json:"booking_details"`
}
