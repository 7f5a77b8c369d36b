package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/shopspring/decimal"
)

// BookingRepository handles the booking workflow: the atomic
// book/reserve/log transaction, cancellation, and booking reads.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateBooking books the requested seats on a schedule as one transaction:
//
//  1. lock the schedule row (FOR UPDATE) so concurrent bookings for the same
//     schedule serialise,
//  2. re-check availability under the lock,
//  3. insert the booking, its schedule_seats rows and the seat_logs audit row.
//
// The UNIQUE(schedule_id, seat_id) index is the backstop for anything that
// bypasses the lock; a violation surfaces as SeatsUnavailableError and rolls
// the whole attempt back. Either every row exists afterwards or none does.
func (r *BookingRepository) CreateBooking(userID, scheduleID string, seatNumbers []string) (*models.BookingDetail, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var schedule struct {
		BusID      string          `db:"bus_id"`
		Fare       decimal.Decimal `db:"fare"`
		TotalSeats int             `db:"total_seats"`
	}
	err = tx.Get(&schedule, `
		SELECT s.bus_id, s.fare, b.total_seats
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		WHERE s.id = $1
		FOR UPDATE OF s`, scheduleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to lock schedule: %w", err)
	}

	reserved, err := reservedSeatNumbersTx(tx, scheduleID)
	if err != nil {
		return nil, err
	}
	if len(seatNumbers) > schedule.TotalSeats-len(reserved) {
		return nil, models.ErrInsufficientSeats
	}
	var unavailable []string
	for _, n := range seatNumbers {
		if reserved[n] {
			unavailable = append(unavailable, n)
		}
	}
	if len(unavailable) > 0 {
		return nil, &models.SeatsUnavailableError{Seats: unavailable}
	}

	totalFare := schedule.Fare.Mul(decimal.NewFromInt(int64(len(seatNumbers))))

	booking := &models.Booking{}
	err = tx.Get(booking, `
		INSERT INTO bookings (id, user_id, schedule_id, total_fare, status)
		VALUES ($1, $2, $3, $4, 'confirmed')
		RETURNING id, user_id, schedule_id, booking_date, total_fare, status`,
		uuid.New().String(), userID, scheduleID, totalFare)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := reserveSeatsTx(tx, scheduleID, schedule.BusID, booking.ID, seatNumbers); err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO seat_logs (id, booking_id, bus_id, seats)
		VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), booking.ID, schedule.BusID, strings.Join(seatNumbers, ","))
	if err != nil {
		return nil, fmt.Errorf("failed to write seat log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.BookingDetail{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		ScheduleID:    booking.ScheduleID,
		ReservedSeats: seatNumbers,
		TotalFare:     booking.TotalFare,
		Status:        booking.Status,
		BookingDate:   booking.BookingDate,
	}, nil
}

// CancelBooking marks a booking cancelled and releases its seats in one
// transaction. Returns (false, ErrBookingNotFound) for an unknown ID and
// (false, nil) for a booking that is already cancelled; the second cancel is
// a no-op, never a double release.
func (r *BookingRepository) CancelBooking(bookingID string) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.BookingStatus
	err = tx.Get(&status, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, models.ErrBookingNotFound
		}
		return false, fmt.Errorf("failed to lock booking: %w", err)
	}
	if status == models.BookingStatusCancelled {
		return false, nil
	}

	if _, err := tx.Exec(`UPDATE bookings SET status = 'cancelled' WHERE id = $1`, bookingID); err != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if err := releaseSeatsTx(tx, bookingID); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// GetBookingByID retrieves a booking with its reserved seat numbers
func (r *BookingRepository) GetBookingByID(bookingID string) (*models.BookingDetail, error) {
	booking := &models.Booking{}
	err := r.db.Get(booking, `
		SELECT id, user_id, schedule_id, booking_date, total_fare, status
		FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	seats, err := r.seatNumbersForBooking(bookingID)
	if err != nil {
		return nil, err
	}
	return bookingDetail(booking, seats), nil
}

// GetBookingsByUserID lists a user's bookings, newest first
func (r *BookingRepository) GetBookingsByUserID(userID string) ([]models.BookingDetail, error) {
	return r.listBookings(`WHERE user_id = $1`, userID)
}

// GetBookingsByScheduleID lists the bookings on a schedule
func (r *BookingRepository) GetBookingsByScheduleID(scheduleID string) ([]models.BookingDetail, error) {
	return r.listBookings(`WHERE schedule_id = $1`, scheduleID)
}

func (r *BookingRepository) listBookings(where string, arg interface{}) ([]models.BookingDetail, error) {
	bookings := []models.Booking{}
	err := r.db.Select(&bookings, `
		SELECT id, user_id, schedule_id, booking_date, total_fare, status
		FROM bookings `+where+` ORDER BY booking_date DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	details := make([]models.BookingDetail, 0, len(bookings))
	for i := range bookings {
		seats, err := r.seatNumbersForBooking(bookings[i].ID)
		if err != nil {
			return nil, err
		}
		details = append(details, *bookingDetail(&bookings[i], seats))
	}
	return details, nil
}

func (r *BookingRepository) seatNumbersForBooking(bookingID string) ([]string, error) {
	seats := []string{}
	err := r.db.Select(&seats, `
		SELECT seat_number FROM schedule_seats
		WHERE booking_id = $1
		ORDER BY seat_number::int`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking seats: %w", err)
	}
	return seats, nil
}

func bookingDetail(b *models.Booking, seats []string) *models.BookingDetail {
	return &models.BookingDetail{
		BookingID:     b.ID,
		UserID:        b.UserID,
		ScheduleID:    b.ScheduleID,
		ReservedSeats: seats,
		TotalFare:     b.TotalFare,
		Status:        b.Status,
		BookingDate:   b.BookingDate,
	}
}

// GetSeatLogByBookingID retrieves the audit row written with a booking
func (r *BookingRepository) GetSeatLogByBookingID(bookingID string) (*models.SeatLog, error) {
	seatLog := &models.SeatLog{}
	err := r.db.Get(seatLog, `
		SELECT id, booking_id, bus_id, seats, date_booked
		FROM seat_logs WHERE booking_id = $1`, bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrSeatLogNotFound
		}
		return nil, fmt.Errorf("failed to get seat log: %w", err)
	}
	return seatLog, nil
}
