package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Route represents a named origin/destination pair, independent of buses
type Route struct {
	ID            string          `json:"id" db:"id"`
	Origin        string          `json:"origin" db:"origin"`
	Destination   string          `json:"destination" db:"destination"`
	Distance      decimal.Decimal `json:"distance" db:"distance"`
	EstimatedTime string          `json:"estimated_time" db:"estimated_time"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// CreateRouteRequest is the payload for registering a route
type CreateRouteRequest struct {
	Origin        string          `json:"origin" binding:"required,max=100"`
	Destination   string          `json:"destination" binding:"required,max=100"`
	Distance      decimal.Decimal `json:"distance" binding:"required"`
	EstimatedTime string          `json:"estimated_time" binding:"omitempty,max=50"`
}

// UpdateRouteRequest carries optional route changes
type UpdateRouteRequest struct {
	Origin        *string          `json:"origin" binding:"omitempty,max=100"`
	Destination   *string          `json:"destination" binding:"omitempty,max=100"`
	Distance      *decimal.Decimal `json:"distance"`
	EstimatedTime *string          `json:"estimated_time" binding:"omitempty,max=50"`
}
