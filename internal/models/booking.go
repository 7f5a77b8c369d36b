package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is constrained to confirmed/cancelled at the storage layer
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed (or later cancelled) reservation of one or
// more seats on a schedule. It is created atomically with its schedule_seats
// rows and a seat_logs audit row.
type Booking struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"user_id" db:"user_id"`
	ScheduleID  string          `json:"schedule_id" db:"schedule_id"`
	BookingDate time.Time       `json:"booking_date" db:"booking_date"`
	TotalFare   decimal.Decimal `json:"total_fare" db:"total_fare"`
	Status      BookingStatus   `json:"status" db:"status"`
}

// ScheduleSeat is the inventory unit: one row per reserved seat per schedule.
// A row exists only while its booking is active; cancellation deletes it and
// the seat becomes available again. UNIQUE(schedule_id, seat_id) enforces
// exactly-once assignment under concurrent bookings.
type ScheduleSeat struct {
	ID         string    `json:"id" db:"id"`
	ScheduleID string    `json:"schedule_id" db:"schedule_id"`
	SeatID     string    `json:"seat_id" db:"seat_id"`
	SeatNumber string    `json:"seat_number" db:"seat_number"`
	BookingID  string    `json:"booking_id" db:"booking_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// SeatLog is the append-only audit record written with every booking. It is
// never read for inventory decisions.
type SeatLog struct {
	ID         string    `json:"id" db:"id"`
	BookingID  string    `json:"booking_id" db:"booking_id"`
	BusID      string    `json:"bus_id" db:"bus_id"`
	Seats      string    `json:"seats" db:"seats"` // comma-joined seat numbers
	DateBooked time.Time `json:"date_booked" db:"date_booked"`
}

// BookTicketRequest is the payload for creating a booking
type BookTicketRequest struct {
	UserID      string   `json:"user_id" binding:"required,uuid"`
	ScheduleID  string   `json:"schedule_id" binding:"required,uuid"`
	SeatNumbers []string `json:"seat_numbers" binding:"required,min=1"`
}

// BookingDetail is a booking projected with its reserved seat numbers
type BookingDetail struct {
	BookingID     string          `json:"booking_id"`
	UserID        string          `json:"user_id"`
	ScheduleID    string          `json:"schedule_id"`
	ReservedSeats []string        `json:"reserved_seats"`
	TotalFare     decimal.Decimal `json:"total_fare"`
	Status        BookingStatus   `json:"status"`
	BookingDate   time.Time       `json:"booking_date"`
}

// CancelBookingResponse reports the outcome of a cancellation
type CancelBookingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SeatAvailability describes the seat map of a schedule: which seats are
// free and which hold active reservations
type SeatAvailability struct {
	ScheduleID     string   `json:"schedule_id"`
	AvailableCount int      `json:"available_count"`
	AvailableSeats []string `json:"available_seats"`
	ReservedSeats  []string `json:"reserved_seats"`
}
