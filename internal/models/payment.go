package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is constrained to successful/failed/refunded at the storage
// layer. Refund is only reachable from successful.
type PaymentStatus string

const (
	PaymentStatusSuccessful PaymentStatus = "successful"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// Payment is one ledger row recording a payment attempt against a booking
type Payment struct {
	ID            string          `json:"id" db:"id"`
	BookingID     string          `json:"booking_id" db:"booking_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentStatus PaymentStatus   `json:"payment_status" db:"payment_status"`
	PaymentDate   time.Time       `json:"payment_date" db:"payment_date"`
}

// InitiatePaymentRequest records the outcome of a payment attempt
type InitiatePaymentRequest struct {
	BookingID     string          `json:"booking_id" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentStatus PaymentStatus   `json:"payment_status" binding:"required,oneof=successful failed"`
}
