package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Schedule represents one bus running one route at a specific time. The
// reservation state for the trip lives in schedule_seats.
type Schedule struct {
	ID            string          `json:"id" db:"id"`
	BusID         string          `json:"bus_id" db:"bus_id"`
	RouteID       string          `json:"route_id" db:"route_id"`
	DepartureTime time.Time       `json:"departure_time" db:"departure_time"`
	ArrivalTime   time.Time       `json:"arrival_time" db:"arrival_time"`
	Fare          decimal.Decimal `json:"fare" db:"fare"`
	ServiceDate   time.Time       `json:"service_date" db:"service_date"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// CreateScheduleRequest is the payload for adding a scheduled trip
type CreateScheduleRequest struct {
	BusID         string          `json:"bus_id" binding:"required,uuid"`
	RouteID       string          `json:"route_id" binding:"required,uuid"`
	DepartureTime time.Time       `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time       `json:"arrival_time" binding:"required"`
	Fare          decimal.Decimal `json:"fare" binding:"required"`
	ServiceDate   time.Time       `json:"service_date" binding:"required"`
}

// UpdateScheduleRequest carries optional schedule changes
type UpdateScheduleRequest struct {
	DepartureTime *time.Time       `json:"departure_time"`
	ArrivalTime   *time.Time       `json:"arrival_time"`
	Fare          *decimal.Decimal `json:"fare"`
	ServiceDate   *time.Time       `json:"service_date"`
}

// SearchBusRequest is the payload for searching trips between two points on
// a travel date
type SearchBusRequest struct {
	Origin      string    `json:"origin" binding:"required"`
	Destination string    `json:"destination" binding:"required"`
	TravelDate  time.Time `json:"travel_date" binding:"required"`
}

// BusSearchResult is one row of a trip search, including live availability
type BusSearchResult struct {
	ScheduleID     string          `json:"schedule_id" db:"schedule_id"`
	BusID          string          `json:"bus_id" db:"bus_id"`
	RouteID        string          `json:"route_id" db:"route_id"`
	BusName        string          `json:"bus_name" db:"bus_name"`
	BusNumber      string          `json:"bus_number" db:"bus_number"`
	BusType        BusType         `json:"bus_type" db:"bus_type"`
	Origin         string          `json:"origin" db:"origin"`
	Destination    string          `json:"destination" db:"destination"`
	DepartureTime  time.Time       `json:"departure_time" db:"departure_time"`
	ArrivalTime    time.Time       `json:"arrival_time" db:"arrival_time"`
	Fare           decimal.Decimal `json:"fare" db:"fare"`
	AvailableSeats int             `json:"available_seats" db:"available_seats"`
}
