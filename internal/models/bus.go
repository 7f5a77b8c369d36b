package models

import (
	"time"
)

// BusType represents the category of a bus
type BusType string

const (
	BusTypeAC      BusType = "ac"
	BusTypeNonAC   BusType = "nonac"
	BusTypeSleeper BusType = "sleeper"
	BusTypeSeater  BusType = "seater"
)

// Bus represents a physical vehicle owned by an operator. Its seats are
// created alongside it, one row per seat number 1..TotalSeats.
type Bus struct {
	ID         string    `json:"id" db:"id"`
	OperatorID string    `json:"operator_id" db:"operator_id"`
	BusName    string    `json:"bus_name" db:"bus_name"`
	BusNumber  string    `json:"bus_number" db:"bus_number"`
	BusType    BusType   `json:"bus_type" db:"bus_type"`
	TotalSeats int       `json:"total_seats" db:"total_seats"`
	Amenities  string    `json:"amenities" db:"amenities"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Seat is the physical seat identity on a bus. It carries no booking state;
// reservations live in schedule_seats.
type Seat struct {
	ID         string `json:"id" db:"id"`
	BusID      string `json:"bus_id" db:"bus_id"`
	SeatNumber string `json:"seat_number" db:"seat_number"`
}

// CreateBusRequest is the payload for registering a bus
type CreateBusRequest struct {
	OperatorID string  `json:"operator_id" binding:"required,uuid"`
	BusName    string  `json:"bus_name" binding:"omitempty,max=100"`
	BusNumber  string  `json:"bus_number" binding:"required,max=50"`
	BusType    BusType `json:"bus_type" binding:"required,oneof=ac nonac sleeper seater"`
	TotalSeats int     `json:"total_seats" binding:"required,gt=0"`
	Amenities  string  `json:"amenities" binding:"omitempty,max=255"`
}

// UpdateBusRequest carries optional bus changes. A TotalSeats change grows or
// shrinks the seat set; shrinking is rejected while removed seats hold active
// reservations.
type UpdateBusRequest struct {
	BusName    *string  `json:"bus_name" binding:"omitempty,max=100"`
	BusType    *BusType `json:"bus_type" binding:"omitempty,oneof=ac nonac sleeper seater"`
	TotalSeats *int     `json:"total_seats" binding:"omitempty,gt=0"`
	Amenities  *string  `json:"amenities" binding:"omitempty,max=255"`
}
