package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
)

// PaymentRepository handles the payment ledger
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, booking_id, amount, payment_status, payment_date`

// CreatePayment appends a ledger row for a payment attempt
func (r *PaymentRepository) CreatePayment(req *models.InitiatePaymentRequest) (*models.Payment, error) {
	payment := &models.Payment{}
	err := r.db.Get(payment, `
		INSERT INTO payments (id, booking_id, amount, payment_status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+paymentColumns,
		uuid.New().String(), req.BookingID, req.Amount, req.PaymentStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

// GetPaymentByBookingID retrieves the latest payment for a booking
func (r *PaymentRepository) GetPaymentByBookingID(bookingID string) (*models.Payment, error) {
	payment := &models.Payment{}
	err := r.db.Get(payment, `
		SELECT `+paymentColumns+`
		FROM payments WHERE booking_id = $1
		ORDER BY payment_date DESC LIMIT 1`, bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// RefundPayment flips the booking's payment to refunded. Only a successful
// payment can be refunded; the status check and update run in one statement
// so a concurrent refund cannot double-apply.
func (r *PaymentRepository) RefundPayment(bookingID string) (*models.Payment, error) {
	payment := &models.Payment{}
	err := r.db.Get(payment, `
		UPDATE payments SET payment_status = 'refunded'
		WHERE id = (
			SELECT id FROM payments
			WHERE booking_id = $1 AND payment_status = 'successful'
			ORDER BY payment_date DESC LIMIT 1
		)
		RETURNING `+paymentColumns, bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			// Distinguish "no payment" from "payment not refundable".
			if _, lookupErr := r.GetPaymentByBookingID(bookingID); lookupErr != nil {
				return nil, lookupErr
			}
			return nil, models.ErrRefundNotAllowed
		}
		return nil, fmt.Errorf("failed to refund payment: %w", err)
	}
	return payment, nil
}
