package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/shopspring/decimal"
)

// ReportRepository aggregates bookings for the admin dashboard
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// GenerateReport aggregates non-cancelled bookings, optionally filtered by
// booking-date range, route ("Origin-Destination") and operator name.
// Revenue is summed with exact decimal arithmetic.
func (r *ReportRepository) GenerateReport(req *models.GenerateReportsRequest) (*models.Report, error) {
	query := `
		SELECT b.id, b.user_id, b.schedule_id, b.booking_date, b.total_fare, b.status
		FROM bookings b
		JOIN schedules s ON s.id = b.schedule_id
		JOIN routes rt ON rt.id = s.route_id
		JOIN buses bus ON bus.id = s.bus_id
		JOIN users op ON op.id = bus.operator_id
		WHERE b.status <> 'cancelled'`
	args := []interface{}{}

	if req.StartDate != nil && req.EndDate != nil {
		args = append(args, *req.StartDate, *req.EndDate)
		query += fmt.Sprintf(" AND b.booking_date >= $%d AND b.booking_date <= $%d", len(args)-1, len(args))
	}
	if req.Route != "" {
		args = append(args, req.Route)
		query += fmt.Sprintf(" AND rt.origin || '-' || rt.destination = $%d", len(args))
	}
	if req.Operator != "" {
		args = append(args, req.Operator)
		query += fmt.Sprintf(" AND op.name = $%d", len(args))
	}
	query += " ORDER BY b.booking_date DESC"

	bookings := []models.Booking{}
	if err := r.db.Select(&bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query report bookings: %w", err)
	}

	report := &models.Report{
		TotalBookings:  len(bookings),
		TotalRevenue:   decimal.Zero,
		Route:          req.Route,
		Operator:       req.Operator,
		BookingDetails: make([]models.BookingDetail, 0, len(bookings)),
	}

	for i := range bookings {
		report.TotalRevenue = report.TotalRevenue.Add(bookings[i].TotalFare)

		seats := []string{}
		err := r.db.Select(&seats, `
			SELECT seat_number FROM schedule_seats
			WHERE booking_id = $1
			ORDER BY seat_number::int`, bookings[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list report booking seats: %w", err)
		}
		report.BookingDetails = append(report.BookingDetails, *bookingDetail(&bookings[i], seats))
	}

	return report, nil
}
