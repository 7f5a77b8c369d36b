package database

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
)

// BusRepository handles bus and seat database operations
type BusRepository struct {
	db *sqlx.DB
}

// NewBusRepository creates a new BusRepository
func NewBusRepository(db *sqlx.DB) *BusRepository {
	return &BusRepository{db: db}
}

const busColumns = `id, operator_id, bus_name, bus_number, bus_type, total_seats, amenities, created_at, updated_at`

// CreateBus inserts a bus and its seat rows (numbered "1".."N") in one
// transaction. Duplicate bus numbers map to ErrBusNumberInUse.
func (r *BusRepository) CreateBus(req *models.CreateBusRequest) (*models.Bus, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	bus := &models.Bus{}
	err = tx.Get(bus, `
		INSERT INTO buses (id, operator_id, bus_name, bus_number, bus_type, total_seats, amenities)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+busColumns,
		uuid.New().String(), req.OperatorID, req.BusName, req.BusNumber,
		req.BusType, req.TotalSeats, req.Amenities)
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, models.ErrBusNumberInUse
		}
		return nil, fmt.Errorf("failed to create bus: %w", err)
	}

	for i := 1; i <= req.TotalSeats; i++ {
		_, err = tx.Exec(`
			INSERT INTO seats (id, bus_id, seat_number) VALUES ($1, $2, $3)`,
			uuid.New().String(), bus.ID, strconv.Itoa(i))
		if err != nil {
			return nil, fmt.Errorf("failed to create seat %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bus, nil
}

// GetBusByID retrieves a bus by ID
func (r *BusRepository) GetBusByID(busID string) (*models.Bus, error) {
	bus := &models.Bus{}
	err := r.db.Get(bus, `SELECT `+busColumns+` FROM buses WHERE id = $1`, busID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrBusNotFound
		}
		return nil, fmt.Errorf("failed to get bus: %w", err)
	}
	return bus, nil
}

// GetAllBuses lists every registered bus
func (r *BusRepository) GetAllBuses() ([]models.Bus, error) {
	buses := []models.Bus{}
	err := r.db.Select(&buses, `SELECT `+busColumns+` FROM buses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list buses: %w", err)
	}
	return buses, nil
}

// GetBusesByOperatorID lists an operator's fleet
func (r *BusRepository) GetBusesByOperatorID(operatorID string) ([]models.Bus, error) {
	buses := []models.Bus{}
	err := r.db.Select(&buses,
		`SELECT `+busColumns+` FROM buses WHERE operator_id = $1 ORDER BY created_at DESC`, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operator buses: %w", err)
	}
	return buses, nil
}

// UpdateBus applies the non-nil fields of req. A seat-count increase adds seat
// rows N+1..M; a decrease removes the highest-numbered seats but is rejected
// with ErrSeatsReserved while any of them holds an active reservation on any
// schedule, so a shrink can never orphan schedule_seats rows.
func (r *BusRepository) UpdateBus(busID string, req *models.UpdateBusRequest) (*models.Bus, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	bus := &models.Bus{}
	err = tx.Get(bus, `SELECT `+busColumns+` FROM buses WHERE id = $1 FOR UPDATE`, busID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrBusNotFound
		}
		return nil, fmt.Errorf("failed to lock bus: %w", err)
	}

	if req.TotalSeats != nil && *req.TotalSeats != bus.TotalSeats {
		newTotal := *req.TotalSeats
		if newTotal > bus.TotalSeats {
			for i := bus.TotalSeats + 1; i <= newTotal; i++ {
				_, err = tx.Exec(`
					INSERT INTO seats (id, bus_id, seat_number) VALUES ($1, $2, $3)`,
					uuid.New().String(), busID, strconv.Itoa(i))
				if err != nil {
					return nil, fmt.Errorf("failed to add seat %d: %w", i, err)
				}
			}
		} else {
			// Seats are numbered 1..N, so a shrink removes numbers newTotal+1..N.
			var reserved int
			err = tx.Get(&reserved, `
				SELECT COUNT(*)
				FROM schedule_seats ss
				JOIN seats s ON s.id = ss.seat_id
				JOIN bookings b ON b.id = ss.booking_id
				WHERE s.bus_id = $1
				  AND s.seat_number::int > $2
				  AND b.status <> 'cancelled'`,
				busID, newTotal)
			if err != nil {
				return nil, fmt.Errorf("failed to check reserved seats: %w", err)
			}
			if reserved > 0 {
				return nil, models.ErrSeatsReserved
			}
			_, err = tx.Exec(`
				DELETE FROM seats WHERE bus_id = $1 AND seat_number::int > $2`,
				busID, newTotal)
			if err != nil {
				return nil, fmt.Errorf("failed to remove seats: %w", err)
			}
		}
		bus.TotalSeats = newTotal
	}

	err = tx.Get(bus, `
		UPDATE buses SET
			bus_name    = COALESCE($2, bus_name),
			bus_type    = COALESCE($3, bus_type),
			amenities   = COALESCE($4, amenities),
			total_seats = $5,
			updated_at  = now()
		WHERE id = $1
		RETURNING `+busColumns,
		busID, req.BusName, req.BusType, req.Amenities, bus.TotalSeats)
	if err != nil {
		return nil, fmt.Errorf("failed to update bus: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bus, nil
}

// DeleteBus removes a bus and its seats. Rejected with
// ErrBusHasActiveBookings while any schedule on the bus has a non-cancelled
// booking.
func (r *BusRepository) DeleteBus(busID string) (*models.Bus, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	bus := &models.Bus{}
	err = tx.Get(bus, `SELECT `+busColumns+` FROM buses WHERE id = $1 FOR UPDATE`, busID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrBusNotFound
		}
		return nil, fmt.Errorf("failed to lock bus: %w", err)
	}

	var active int
	err = tx.Get(&active, `
		SELECT COUNT(*)
		FROM bookings b
		JOIN schedules sch ON sch.id = b.schedule_id
		WHERE sch.bus_id = $1 AND b.status <> 'cancelled'`, busID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active bookings: %w", err)
	}
	if active > 0 {
		return nil, models.ErrBusHasActiveBookings
	}

	if _, err := tx.Exec(`DELETE FROM seats WHERE bus_id = $1`, busID); err != nil {
		return nil, fmt.Errorf("failed to delete seats: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM buses WHERE id = $1`, busID); err != nil {
		return nil, fmt.Errorf("failed to delete bus: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bus, nil
}

// GetSeatsByBusID lists the physical seats on a bus in numeric order
func (r *BusRepository) GetSeatsByBusID(busID string) ([]models.Seat, error) {
	seats := []models.Seat{}
	err := r.db.Select(&seats, `
		SELECT id, bus_id, seat_number
		FROM seats WHERE bus_id = $1
		ORDER BY seat_number::int`, busID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	return seats, nil
}

// IsBusNumberUnique reports whether no bus exists with the given number
func (r *BusRepository) IsBusNumberUnique(busNumber string) (bool, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM buses WHERE bus_number = $1`, busNumber)
	if err != nil {
		return false, fmt.Errorf("failed to check bus number uniqueness: %w", err)
	}
	return count == 0, nil
}
