package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the storage and service layers. Handlers map
// these onto HTTP status codes.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrBusNotFound          = errors.New("bus not found")
	ErrRouteNotFound        = errors.New("route not found")
	ErrScheduleNotFound     = errors.New("schedule not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrFeedbackNotFound     = errors.New("feedback not found")
	ErrSeatLogNotFound      = errors.New("seat log not found")

	ErrEmailInUse           = errors.New("email address already in use")
	ErrBusNumberInUse       = errors.New("bus number already in use")
	ErrInvalidSeatSelection = errors.New("invalid seat selection")
	ErrInsufficientSeats    = errors.New("not enough seats available")

	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserInactive         = errors.New("user account is deactivated")
	ErrInvalidRole          = errors.New("invalid role")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")

	ErrRefundNotAllowed          = errors.New("refund not allowed for this payment")
	ErrBusHasActiveBookings      = errors.New("bus has active bookings")
	ErrScheduleHasActiveBookings = errors.New("schedule has active bookings")
	ErrSeatsReserved             = errors.New("seats are reserved by active bookings")
)

// SeatsUnavailableError reports which requested seats are already taken on a
// schedule, so the client can offer alternatives.
type SeatsUnavailableError struct {
	Seats []string
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Seats, ", "))
}

// SeatNotFoundError reports a requested seat number that does not exist on
// the bus serving the schedule.
type SeatNotFoundError struct {
	SeatNumber string
}

func (e *SeatNotFoundError) Error() string {
	return fmt.Sprintf("seat %s does not exist on this bus", e.SeatNumber)
}
