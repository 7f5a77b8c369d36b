package services

import (
	"io"
	"testing"

	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Invalid seat selections must be rejected before any storage access, which
// is why a service with nil repositories suffices here.
func TestBookTicket_RejectsEmptySeatSelection(t *testing.T) {
	svc := NewBookingService(nil, nil, nil, testLogger())

	_, err := svc.BookTicket(&models.BookTicketRequest{
		UserID:      "a3b54f3c-1111-4a8d-9c6e-000000000001",
		ScheduleID:  "a3b54f3c-2222-4a8d-9c6e-000000000002",
		SeatNumbers: []string{},
	})
	assert.ErrorIs(t, err, models.ErrInvalidSeatSelection)
}

func TestBookTicket_RejectsDuplicateSeats(t *testing.T) {
	svc := NewBookingService(nil, nil, nil, testLogger())

	_, err := svc.BookTicket(&models.BookTicketRequest{
		UserID:      "a3b54f3c-1111-4a8d-9c6e-000000000001",
		ScheduleID:  "a3b54f3c-2222-4a8d-9c6e-000000000002",
		SeatNumbers: []string{"4", "7", "4"},
	})
	assert.ErrorIs(t, err, models.ErrInvalidSeatSelection)
}

func TestBookTicket_RejectsBlankSeatNumber(t *testing.T) {
	svc := NewBookingService(nil, nil, nil, testLogger())

	_, err := svc.BookTicket(&models.BookTicketRequest{
		UserID:      "a3b54f3c-1111-4a8d-9c6e-000000000001",
		ScheduleID:  "a3b54f3c-2222-4a8d-9c6e-000000000002",
		SeatNumbers: []string{"4", ""},
	})
	assert.ErrorIs(t, err, models.ErrInvalidSeatSelection)
}
