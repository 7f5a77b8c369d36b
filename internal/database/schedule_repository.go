package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
)

// ScheduleRepository handles schedule database operations and trip search
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = `id, bus_id, route_id, departure_time, arrival_time, fare, service_date, created_at, updated_at`

// CreateSchedule inserts a scheduled trip. The referenced bus and route must
// exist (FK enforced).
func (r *ScheduleRepository) CreateSchedule(req *models.CreateScheduleRequest) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	err := r.db.Get(schedule, `
		INSERT INTO schedules (id, bus_id, route_id, departure_time, arrival_time, fare, service_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+scheduleColumns,
		uuid.New().String(), req.BusID, req.RouteID,
		req.DepartureTime, req.ArrivalTime, req.Fare, req.ServiceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return schedule, nil
}

// GetScheduleByID retrieves a schedule by ID
func (r *ScheduleRepository) GetScheduleByID(scheduleID string) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	err := r.db.Get(schedule, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, scheduleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return schedule, nil
}

// GetAllSchedules lists every schedule, soonest departure first
func (r *ScheduleRepository) GetAllSchedules() ([]models.Schedule, error) {
	schedules := []models.Schedule{}
	err := r.db.Select(&schedules, `SELECT `+scheduleColumns+` FROM schedules ORDER BY departure_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// GetSchedulesByRouteID lists schedules serving a route
func (r *ScheduleRepository) GetSchedulesByRouteID(routeID string) ([]models.Schedule, error) {
	schedules := []models.Schedule{}
	err := r.db.Select(&schedules,
		`SELECT `+scheduleColumns+` FROM schedules WHERE route_id = $1 ORDER BY departure_time`, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules by route: %w", err)
	}
	return schedules, nil
}

// GetSchedulesByBusID lists schedules assigned to a bus
func (r *ScheduleRepository) GetSchedulesByBusID(busID string) ([]models.Schedule, error) {
	schedules := []models.Schedule{}
	err := r.db.Select(&schedules,
		`SELECT `+scheduleColumns+` FROM schedules WHERE bus_id = $1 ORDER BY departure_time`, busID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules by bus: %w", err)
	}
	return schedules, nil
}

// GetSchedulesByOperatorID lists schedules across an operator's fleet
func (r *ScheduleRepository) GetSchedulesByOperatorID(operatorID string) ([]models.Schedule, error) {
	schedules := []models.Schedule{}
	err := r.db.Select(&schedules, `
		SELECT s.id, s.bus_id, s.route_id, s.departure_time, s.arrival_time,
		       s.fare, s.service_date, s.created_at, s.updated_at
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		WHERE b.operator_id = $1
		ORDER BY s.departure_time`, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules by operator: %w", err)
	}
	return schedules, nil
}

// UpdateSchedule applies the non-nil fields of req
func (r *ScheduleRepository) UpdateSchedule(scheduleID string, req *models.UpdateScheduleRequest) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	err := r.db.Get(schedule, `
		UPDATE schedules SET
			departure_time = COALESCE($2, departure_time),
			arrival_time   = COALESCE($3, arrival_time),
			fare           = COALESCE($4, fare),
			service_date   = COALESCE($5, service_date),
			updated_at     = now()
		WHERE id = $1
		RETURNING `+scheduleColumns,
		scheduleID, req.DepartureTime, req.ArrivalTime, req.Fare, req.ServiceDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	return schedule, nil
}

// DeleteSchedule removes a schedule. Rejected with
// ErrScheduleHasActiveBookings while non-cancelled bookings reference it.
func (r *ScheduleRepository) DeleteSchedule(scheduleID string) (*models.Schedule, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	schedule := &models.Schedule{}
	err = tx.Get(schedule, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1 FOR UPDATE`, scheduleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to lock schedule: %w", err)
	}

	var active int
	err = tx.Get(&active,
		`SELECT COUNT(*) FROM bookings WHERE schedule_id = $1 AND status <> 'cancelled'`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active bookings: %w", err)
	}
	if active > 0 {
		return nil, models.ErrScheduleHasActiveBookings
	}

	if _, err := tx.Exec(`DELETE FROM schedule_seats WHERE schedule_id = $1`, scheduleID); err != nil {
		return nil, fmt.Errorf("failed to delete schedule seats: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM schedules WHERE id = $1`, scheduleID); err != nil {
		return nil, fmt.Errorf("failed to delete schedule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return schedule, nil
}

// SearchBuses finds schedules between origin and destination on the travel
// date, with live seat availability computed per schedule.
func (r *ScheduleRepository) SearchBuses(origin, destination string, travelDate time.Time) ([]models.BusSearchResult, error) {
	results := []models.BusSearchResult{}
	err := r.db.Select(&results, `
		SELECT s.id            AS schedule_id,
		       b.id            AS bus_id,
		       rt.id           AS route_id,
		       b.bus_name, b.bus_number, b.bus_type,
		       rt.origin, rt.destination,
		       s.departure_time, s.arrival_time, s.fare,
		       b.total_seats - (
		           SELECT COUNT(*)
		           FROM schedule_seats ss
		           JOIN bookings bk ON bk.id = ss.booking_id
		           WHERE ss.schedule_id = s.id AND bk.status <> 'cancelled'
		       ) AS available_seats
		FROM schedules s
		JOIN routes rt ON rt.id = s.route_id
		JOIN buses b ON b.id = s.bus_id
		WHERE rt.origin = $1
		  AND rt.destination = $2
		  AND s.service_date::date = $3::date
		ORDER BY s.departure_time`,
		origin, destination, travelDate)
	if err != nil {
		return nil, fmt.Errorf("failed to search buses: %w", err)
	}
	return results, nil
}
