package services

import (
	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// PaymentService records payment attempts and refunds against bookings
type PaymentService struct {
	paymentRepo *database.PaymentRepository
	bookingRepo *database.BookingRepository
	logger      *logrus.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo *database.PaymentRepository, bookingRepo *database.BookingRepository, logger *logrus.Logger) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// InitiatePayment appends a ledger row for a payment attempt. The booking
// must exist.
func (s *PaymentService) InitiatePayment(req *models.InitiatePaymentRequest) (*models.Payment, error) {
	if _, err := s.bookingRepo.GetBookingByID(req.BookingID); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.CreatePayment(req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"booking_id": payment.BookingID,
		"amount":     payment.Amount,
		"status":     payment.PaymentStatus,
	}).Info("Payment recorded")
	return payment, nil
}

// GetPaymentStatus returns the latest payment for a booking
func (s *PaymentService) GetPaymentStatus(bookingID string) (*models.Payment, error) {
	return s.paymentRepo.GetPaymentByBookingID(bookingID)
}

// InitiateRefund refunds a booking's payment. Only successful payments are
// refundable.
func (s *PaymentService) InitiateRefund(bookingID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.RefundPayment(bookingID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"booking_id": payment.BookingID,
		"amount":     payment.Amount,
	}).Info("Payment refunded")
	return payment, nil
}
