package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPaymentID = "a3b54f3c-6666-4a8d-9c6e-000000000007"

func paymentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "booking_id", "amount", "payment_status", "payment_date"})
}

func TestRefundPayment_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(`UPDATE payments SET payment_status = 'refunded'`).
		WithArgs(testBookingID).
		WillReturnRows(paymentRows().
			AddRow(testPaymentID, testBookingID, "200.00", "refunded", time.Now()))

	payment, err := repo.RefundPayment(testBookingID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, payment.PaymentStatus)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed payment can never be refunded. The update matches nothing, and
// the follow-up lookup distinguishes "not refundable" from "no payment".
func TestRefundPayment_FailedPaymentNotRefundable(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(`UPDATE payments SET payment_status = 'refunded'`).
		WithArgs(testBookingID).
		WillReturnRows(paymentRows())
	mock.ExpectQuery(`FROM payments WHERE booking_id = \$1`).
		WithArgs(testBookingID).
		WillReturnRows(paymentRows().
			AddRow(testPaymentID, testBookingID, "200.00", "failed", time.Now()))

	_, err := repo.RefundPayment(testBookingID)
	assert.ErrorIs(t, err, models.ErrRefundNotAllowed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundPayment_NoPayment(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(`UPDATE payments SET payment_status = 'refunded'`).
		WithArgs(testBookingID).
		WillReturnRows(paymentRows())
	mock.ExpectQuery(`FROM payments WHERE booking_id = \$1`).
		WithArgs(testBookingID).
		WillReturnRows(paymentRows())

	_, err := repo.RefundPayment(testBookingID)
	assert.ErrorIs(t, err, models.ErrPaymentNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A refunded payment stays refunded; the second refund attempt is rejected.
func TestRefundPayment_AlreadyRefunded(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(`UPDATE payments SET payment_status = 'refunded'`).
		WithArgs(testBookingID).
		WillReturnRows(paymentRows())
	mock.ExpectQuery(`FROM payments WHERE booking_id = \$1`).
		WithArgs(testBookingID).
		WillReturnRows(paymentRows().
			AddRow(testPaymentID, testBookingID, "200.00", "refunded", time.Now()))

	_, err := repo.RefundPayment(testBookingID)
	assert.ErrorIs(t, err, models.ErrRefundNotAllowed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
