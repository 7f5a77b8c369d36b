package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/phpdave11/gofpdf"
)

// TicketService renders a booking as a printable e-ticket PDF
type TicketService struct {
	bookingRepo  *database.BookingRepository
	scheduleRepo *database.ScheduleRepository
	routeRepo    *database.RouteRepository
	busRepo      *database.BusRepository
	userRepo     *database.UserRepository
}

// NewTicketService creates a new TicketService
func NewTicketService(
	bookingRepo *database.BookingRepository,
	scheduleRepo *database.ScheduleRepository,
	routeRepo *database.RouteRepository,
	busRepo *database.BusRepository,
	userRepo *database.UserRepository,
) *TicketService {
	return &TicketService{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		routeRepo:    routeRepo,
		busRepo:      busRepo,
		userRepo:     userRepo,
	}
}

// GenerateTicketPDF renders the e-ticket for a confirmed booking. Cancelled
// bookings have no ticket.
func (s *TicketService) GenerateTicketPDF(bookingID string) ([]byte, string, error) {
	booking, err := s.bookingRepo.GetBookingByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, "", models.ErrBookingNotFound
	}

	schedule, err := s.scheduleRepo.GetScheduleByID(booking.ScheduleID)
	if err != nil {
		return nil, "", err
	}
	route, err := s.routeRepo.GetRouteByID(schedule.RouteID)
	if err != nil {
		return nil, "", err
	}
	bus, err := s.busRepo.GetBusByID(schedule.BusID)
	if err != nil {
		return nil, "", err
	}
	user, err := s.userRepo.GetUserByID(booking.UserID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "NextStop E-Ticket")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Booking ID", booking.BookingID},
		{"Passenger", user.Name},
		{"Route", fmt.Sprintf("%s - %s", route.Origin, route.Destination)},
		{"Bus", fmt.Sprintf("%s (%s)", bus.BusName, bus.BusNumber)},
		{"Departure", schedule.DepartureTime.Format("02 Jan 2006 15:04")},
		{"Arrival", schedule.ArrivalTime.Format("02 Jan 2006 15:04")},
		{"Seats", strings.Join(booking.ReservedSeats, ", ")},
		{"Total Fare", booking.TotalFare.StringFixed(2)},
		{"Status", string(booking.Status)},
		{"Booked On", booking.BookingDate.Format("02 Jan 2006 15:04")},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Please present this ticket and a valid ID at boarding. Seats are released on cancellation.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render ticket PDF: %w", err)
	}

	filename := fmt.Sprintf("ticket-%s.pdf", booking.BookingID)
	return buf.Bytes(), filename, nil
}
