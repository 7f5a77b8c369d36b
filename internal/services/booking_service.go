package services

import (
	"time"

	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// BookingService runs the booking workflow: request validation, the atomic
// book/reserve/log transaction, cancellation and availability queries.
type BookingService struct {
	bookingRepo      *database.BookingRepository
	scheduleRepo     *database.ScheduleRepository
	scheduleSeatRepo *database.ScheduleSeatRepository
	logger           *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo *database.BookingRepository,
	scheduleRepo *database.ScheduleRepository,
	scheduleSeatRepo *database.ScheduleSeatRepository,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:      bookingRepo,
		scheduleRepo:     scheduleRepo,
		scheduleSeatRepo: scheduleSeatRepo,
		logger:           logger,
	}
}

// BookTicket books the requested seats for a user. Validation failures are
// rejected before any storage access; availability is decided inside the
// repository transaction, so two concurrent requests for overlapping seats
// can never both succeed.
func (s *BookingService) BookTicket(req *models.BookTicketRequest) (*models.BookingDetail, error) {
	if len(req.SeatNumbers) == 0 {
		return nil, models.ErrInvalidSeatSelection
	}
	seen := make(map[string]bool, len(req.SeatNumbers))
	for _, n := range req.SeatNumbers {
		if n == "" || seen[n] {
			return nil, models.ErrInvalidSeatSelection
		}
		seen[n] = true
	}

	booking, err := s.bookingRepo.CreateBooking(req.UserID, req.ScheduleID, req.SeatNumbers)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id":      req.UserID,
			"schedule_id":  req.ScheduleID,
			"seat_numbers": req.SeatNumbers,
		}).WithError(err).Warn("Booking rejected")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  booking.BookingID,
		"user_id":     booking.UserID,
		"schedule_id": booking.ScheduleID,
		"seats":       booking.ReservedSeats,
		"total_fare":  booking.TotalFare,
	}).Info("Booking confirmed")

	return booking, nil
}

// CancelBooking cancels a booking and releases its seats. The second cancel
// of the same booking reports success=false without touching inventory.
func (s *BookingService) CancelBooking(bookingID string) (*models.CancelBookingResponse, error) {
	cancelled, err := s.bookingRepo.CancelBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return &models.CancelBookingResponse{
			Success: false,
			Message: "Booking is already cancelled",
		}, nil
	}

	s.logger.WithField("booking_id", bookingID).Info("Booking cancelled")
	return &models.CancelBookingResponse{
		Success: true,
		Message: "Booking cancelled and seats released",
	}, nil
}

// GetBookingByID returns a booking with its reserved seats
func (s *BookingService) GetBookingByID(bookingID string) (*models.BookingDetail, error) {
	return s.bookingRepo.GetBookingByID(bookingID)
}

// GetBookingsByUserID lists a user's bookings
func (s *BookingService) GetBookingsByUserID(userID string) ([]models.BookingDetail, error) {
	return s.bookingRepo.GetBookingsByUserID(userID)
}

// GetBookingsByScheduleID lists the bookings on a schedule
func (s *BookingService) GetBookingsByScheduleID(scheduleID string) ([]models.BookingDetail, error) {
	return s.bookingRepo.GetBookingsByScheduleID(scheduleID)
}

// GetSeatLogByBookingID returns the audit row written with a booking
func (s *BookingService) GetSeatLogByBookingID(bookingID string) (*models.SeatLog, error) {
	return s.bookingRepo.GetSeatLogByBookingID(bookingID)
}

// SearchBuses finds trips between two points on a travel date, with live
// availability per schedule
func (s *BookingService) SearchBuses(origin, destination string, travelDate time.Time) ([]models.BusSearchResult, error) {
	return s.scheduleRepo.SearchBuses(origin, destination, travelDate)
}

// GetSeatAvailability returns the free seats on a schedule
func (s *BookingService) GetSeatAvailability(scheduleID string) (*models.SeatAvailability, error) {
	if _, err := s.scheduleRepo.GetScheduleByID(scheduleID); err != nil {
		return nil, err
	}
	count, err := s.scheduleSeatRepo.AvailableSeatCount(scheduleID)
	if err != nil {
		return nil, err
	}
	available, err := s.scheduleSeatRepo.AvailableSeatNumbers(scheduleID)
	if err != nil {
		return nil, err
	}
	reserved, err := s.scheduleSeatRepo.ReservedSeatNumbers(scheduleID)
	if err != nil {
		return nil, err
	}
	return &models.SeatAvailability{
		ScheduleID:     scheduleID,
		AvailableCount: count,
		AvailableSeats: available,
		ReservedSeats:  reserved,
	}, nil
}

// GetScheduleReservations lists the live reservation rows on a schedule, for
// operator seat-map views
func (s *BookingService) GetScheduleReservations(scheduleID string) ([]models.ScheduleSeat, error) {
	if _, err := s.scheduleRepo.GetScheduleByID(scheduleID); err != nil {
		return nil, err
	}
	return s.scheduleSeatRepo.GetScheduleSeats(scheduleID)
}
