package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nextstop/nextstop-backend/internal/models"
)

// respondError maps storage and service errors onto HTTP responses with a
// {"error", "message"} body. Unknown errors become opaque 500s.
func respondError(c *gin.Context, err error) {
	var seatsUnavailable *models.SeatsUnavailableError
	if errors.As(err, &seatsUnavailable) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "seats_unavailable",
			"message": seatsUnavailable.Error(),
			"seats":   seatsUnavailable.Seats,
		})
		return
	}

	var seatNotFound *models.SeatNotFoundError
	if errors.As(err, &seatNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_seat",
			"message": seatNotFound.Error(),
		})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	message := "An unexpected error occurred"

	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrBusNotFound),
		errors.Is(err, models.ErrRouteNotFound),
		errors.Is(err, models.ErrScheduleNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrPaymentNotFound),
		errors.Is(err, models.ErrNotificationNotFound),
		errors.Is(err, models.ErrFeedbackNotFound),
		errors.Is(err, models.ErrSeatLogNotFound):
		status, code, message = http.StatusNotFound, "not_found", err.Error()

	case errors.Is(err, models.ErrEmailInUse),
		errors.Is(err, models.ErrBusNumberInUse),
		errors.Is(err, models.ErrInsufficientSeats),
		errors.Is(err, models.ErrBusHasActiveBookings),
		errors.Is(err, models.ErrScheduleHasActiveBookings),
		errors.Is(err, models.ErrSeatsReserved),
		errors.Is(err, models.ErrRefundNotAllowed):
		status, code, message = http.StatusConflict, "conflict", err.Error()

	case errors.Is(err, models.ErrInvalidSeatSelection),
		errors.Is(err, models.ErrInvalidRole):
		status, code, message = http.StatusBadRequest, "bad_request", err.Error()

	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrRefreshTokenNotFound),
		errors.Is(err, models.ErrRefreshTokenExpired):
		status, code, message = http.StatusUnauthorized, "unauthorized", err.Error()

	case errors.Is(err, models.ErrUserInactive):
		status, code, message = http.StatusForbidden, "forbidden", err.Error()
	}

	c.JSON(status, gin.H{"error": code, "message": message})
}

// respondBindError reports a malformed or invalid request body
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_request",
		"message": err.Error(),
	})
}
