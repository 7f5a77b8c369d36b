package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nextstop/nextstop-backend/internal/middleware"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/nextstop/nextstop-backend/internal/services"
)

type BookingHandler struct {
	bookingService *services.BookingService
	ticketService  *services.TicketService
}

func NewBookingHandler(bookingService *services.BookingService, ticketService *services.TicketService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		ticketService:  ticketService,
	}
}

// SearchBuses lists trips between two points on a date, with live
// availability
// POST /api/v1/bookings/search
func (h *BookingHandler) SearchBuses(c *gin.Context) {
	var req models.SearchBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	results, err := h.bookingService.SearchBuses(req.Origin, req.Destination, req.TravelDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// BookTicket reserves seats on a schedule. Passengers book for themselves;
// admins may book on behalf of any user.
// POST /api/v1/bookings
func (h *BookingHandler) BookTicket(c *gin.Context) {
	var req models.BookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "authentication required"})
		return
	}
	if req.UserID != userCtx.UserID && userCtx.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "cannot book for another user"})
		return
	}

	booking, err := h.bookingService.BookTicket(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookingByID returns one booking with its seats
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	booking, err := h.bookingService.GetBookingByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetBookingsByUser lists a user's bookings
// GET /api/v1/bookings/user/:userId
func (h *BookingHandler) GetBookingsByUser(c *gin.Context) {
	userID := c.Param("userId")

	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "authentication required"})
		return
	}
	if userID != userCtx.UserID && userCtx.Role == models.RolePassenger {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "cannot view another user's bookings"})
		return
	}

	bookings, err := h.bookingService.GetBookingsByUserID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBookingsBySchedule lists the bookings on a trip
// GET /api/v1/bookings/schedule/:scheduleId
func (h *BookingHandler) GetBookingsBySchedule(c *gin.Context) {
	bookings, err := h.bookingService.GetBookingsByScheduleID(c.Param("scheduleId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// CancelBooking cancels a booking and releases its seats. Cancelling twice
// is reported, not an error.
// DELETE /api/v1/bookings/:id
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("id")

	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "authentication required"})
		return
	}
	if userCtx.Role == models.RolePassenger {
		booking, err := h.bookingService.GetBookingByID(bookingID)
		if err != nil {
			respondError(c, err)
			return
		}
		if booking.UserID != userCtx.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "cannot cancel another user's booking"})
			return
		}
	}

	resp, err := h.bookingService.CancelBooking(bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetSeatLog returns the audit record written with a booking
// GET /api/v1/bookings/:id/seat-log
func (h *BookingHandler) GetSeatLog(c *gin.Context) {
	seatLog, err := h.bookingService.GetSeatLogByBookingID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, seatLog)
}

// GetTicketPDF serves the e-ticket for a confirmed booking
// GET /api/v1/bookings/:id/ticket
func (h *BookingHandler) GetTicketPDF(c *gin.Context) {
	pdfBytes, filename, err := h.ticketService.GenerateTicketPDF(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
