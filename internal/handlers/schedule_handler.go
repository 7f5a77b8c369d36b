package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/nextstop/nextstop-backend/internal/services"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	bookingService  *services.BookingService
}

func NewScheduleHandler(scheduleService *services.ScheduleService, bookingService *services.BookingService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		bookingService:  bookingService,
	}
}

// CreateSchedule registers a scheduled trip
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// GetAllSchedules lists every scheduled trip
// GET /api/v1/schedules
func (h *ScheduleHandler) GetAllSchedules(c *gin.Context) {
	schedules, err := h.scheduleService.GetAllSchedules()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// GetScheduleByID returns one schedule
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetScheduleByID(c *gin.Context) {
	schedule, err := h.scheduleService.GetScheduleByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// GetSchedulesByRoute lists trips serving a route
// GET /api/v1/schedules/route/:routeId
func (h *ScheduleHandler) GetSchedulesByRoute(c *gin.Context) {
	schedules, err := h.scheduleService.GetSchedulesByRouteID(c.Param("routeId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// GetSchedulesByBus lists the trips a bus is assigned to
// GET /api/v1/schedules/bus/:busId
func (h *ScheduleHandler) GetSchedulesByBus(c *gin.Context) {
	schedules, err := h.scheduleService.GetSchedulesByBusID(c.Param("busId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// GetSchedulesByOperator lists trips across an operator's fleet
// GET /api/v1/schedules/operator/:operatorId
func (h *ScheduleHandler) GetSchedulesByOperator(c *gin.Context) {
	schedules, err := h.scheduleService.GetSchedulesByOperatorID(c.Param("operatorId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// GetScheduleSeats returns the live seat availability for a trip
// GET /api/v1/schedules/:id/seats
func (h *ScheduleHandler) GetScheduleSeats(c *gin.Context) {
	availability, err := h.bookingService.GetSeatAvailability(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, availability)
}

// GetScheduleReservations lists the live reservation rows on a trip
// GET /api/v1/schedules/:id/reservations
func (h *ScheduleHandler) GetScheduleReservations(c *gin.Context) {
	reservations, err := h.bookingService.GetScheduleReservations(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// UpdateSchedule changes trip details
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req models.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	schedule, err := h.scheduleService.UpdateSchedule(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// DeleteSchedule removes a trip without active bookings
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	schedule, err := h.scheduleService.DeleteSchedule(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted", "schedule": schedule})
}
