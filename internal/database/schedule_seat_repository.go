package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
)

// ScheduleSeatRepository answers seat-inventory questions for a schedule and
// provides the reserve/release primitives the booking transaction runs on.
// A schedule_seats row exists only while its booking is active; cancellation
// deletes the rows, which is what makes the seats available again.
type ScheduleSeatRepository struct {
	db *sqlx.DB
}

// NewScheduleSeatRepository creates a new ScheduleSeatRepository
func NewScheduleSeatRepository(db *sqlx.DB) *ScheduleSeatRepository {
	return &ScheduleSeatRepository{db: db}
}

// AvailableSeatCount returns the number of free seats on a schedule: the
// bus's total seats minus the schedule's active reservations.
func (r *ScheduleSeatRepository) AvailableSeatCount(scheduleID string) (int, error) {
	var count int
	err := r.db.Get(&count, `
		SELECT b.total_seats - (
			SELECT COUNT(*)
			FROM schedule_seats ss
			JOIN bookings bk ON bk.id = ss.booking_id
			WHERE ss.schedule_id = s.id AND bk.status <> 'cancelled'
		)
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		WHERE s.id = $1`, scheduleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, models.ErrScheduleNotFound
		}
		return 0, fmt.Errorf("failed to count available seats: %w", err)
	}
	return count, nil
}

// AvailableSeatNumbers returns the seat numbers on the schedule's bus that
// hold no active reservation for the schedule, in numeric order.
func (r *ScheduleSeatRepository) AvailableSeatNumbers(scheduleID string) ([]string, error) {
	numbers := []string{}
	err := r.db.Select(&numbers, `
		SELECT s.seat_number
		FROM seats s
		JOIN schedules sch ON sch.bus_id = s.bus_id
		WHERE sch.id = $1
		  AND s.id NOT IN (
			SELECT ss.seat_id
			FROM schedule_seats ss
			JOIN bookings bk ON bk.id = ss.booking_id
			WHERE ss.schedule_id = $1 AND bk.status <> 'cancelled'
		  )
		ORDER BY s.seat_number::int`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available seats: %w", err)
	}
	return numbers, nil
}

// ReservedSeatNumbers returns the seat numbers actively reserved on a schedule
func (r *ScheduleSeatRepository) ReservedSeatNumbers(scheduleID string) ([]string, error) {
	numbers := []string{}
	err := r.db.Select(&numbers, `
		SELECT ss.seat_number
		FROM schedule_seats ss
		JOIN bookings bk ON bk.id = ss.booking_id
		WHERE ss.schedule_id = $1 AND bk.status <> 'cancelled'
		ORDER BY ss.seat_number::int`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reserved seats: %w", err)
	}
	return numbers, nil
}

// GetScheduleSeats returns the reservation rows for a schedule
func (r *ScheduleSeatRepository) GetScheduleSeats(scheduleID string) ([]models.ScheduleSeat, error) {
	seats := []models.ScheduleSeat{}
	err := r.db.Select(&seats, `
		SELECT id, schedule_id, seat_id, seat_number, booking_id, created_at
		FROM schedule_seats
		WHERE schedule_id = $1
		ORDER BY seat_number::int`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule seats: %w", err)
	}
	return seats, nil
}

// reservedSeatNumbersTx re-reads the active reservations inside the booking
// transaction, after the schedule row lock is held.
func reservedSeatNumbersTx(tx *sqlx.Tx, scheduleID string) (map[string]bool, error) {
	numbers := []string{}
	err := tx.Select(&numbers, `
		SELECT ss.seat_number
		FROM schedule_seats ss
		JOIN bookings bk ON bk.id = ss.booking_id
		WHERE ss.schedule_id = $1 AND bk.status <> 'cancelled'`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-check reserved seats: %w", err)
	}
	reserved := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		reserved[n] = true
	}
	return reserved, nil
}

// reserveSeatsTx inserts one schedule_seats row per requested seat, resolving
// each seat number against the bus. All-or-nothing: the caller's transaction
// rolls back on any error. A unique violation on (schedule_id, seat_id) means
// a concurrent booking won the seat after our recheck; it maps to
// SeatsUnavailableError so the caller reports a conflict, not an internal
// error.
func reserveSeatsTx(tx *sqlx.Tx, scheduleID, busID, bookingID string, seatNumbers []string) error {
	for _, seatNumber := range seatNumbers {
		var seatID string
		err := tx.Get(&seatID,
			`SELECT id FROM seats WHERE bus_id = $1 AND seat_number = $2`,
			busID, seatNumber)
		if err != nil {
			if err == sql.ErrNoRows {
				return &models.SeatNotFoundError{SeatNumber: seatNumber}
			}
			return fmt.Errorf("failed to look up seat %s: %w", seatNumber, err)
		}

		_, err = tx.Exec(`
			INSERT INTO schedule_seats (id, schedule_id, seat_id, seat_number, booking_id)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), scheduleID, seatID, seatNumber, bookingID)
		if err != nil {
			if isUniqueViolation(err, "") {
				return &models.SeatsUnavailableError{Seats: []string{seatNumber}}
			}
			return fmt.Errorf("failed to reserve seat %s: %w", seatNumber, err)
		}
	}
	return nil
}

// releaseSeatsTx deletes every reservation row owned by a booking. Idempotent:
// releasing an already-released booking affects zero rows and is not an error.
func releaseSeatsTx(tx *sqlx.Tx, bookingID string) error {
	_, err := tx.Exec(`DELETE FROM schedule_seats WHERE booking_id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to release seats: %w", err)
	}
	return nil
}
