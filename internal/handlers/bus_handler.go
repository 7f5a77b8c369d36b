package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/nextstop/nextstop-backend/internal/services"
)

type BusHandler struct {
	busService *services.BusService
}

func NewBusHandler(busService *services.BusService) *BusHandler {
	return &BusHandler{busService: busService}
}

// CreateBus registers a bus with its seat set
// POST /api/v1/buses
func (h *BusHandler) CreateBus(c *gin.Context) {
	var req models.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	bus, err := h.busService.CreateBus(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bus)
}

// GetAllBuses lists the fleet
// GET /api/v1/buses
func (h *BusHandler) GetAllBuses(c *gin.Context) {
	buses, err := h.busService.GetAllBuses()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buses)
}

// GetBusByID returns one bus
// GET /api/v1/buses/:id
func (h *BusHandler) GetBusByID(c *gin.Context) {
	bus, err := h.busService.GetBusByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bus)
}

// GetBusesByOperator lists an operator's buses
// GET /api/v1/buses/operator/:operatorId
func (h *BusHandler) GetBusesByOperator(c *gin.Context) {
	buses, err := h.busService.GetBusesByOperatorID(c.Param("operatorId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buses)
}

// GetBusSeats returns the physical seats of a bus
// GET /api/v1/buses/:id/seats
func (h *BusHandler) GetBusSeats(c *gin.Context) {
	seats, err := h.busService.GetSeatsByBusID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, seats)
}

// UpdateBus changes bus details, resizing the seat set when total_seats
// changes
// PUT /api/v1/buses/:id
func (h *BusHandler) UpdateBus(c *gin.Context) {
	var req models.UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	bus, err := h.busService.UpdateBus(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bus)
}

// DeleteBus removes a bus without active bookings
// DELETE /api/v1/buses/:id
func (h *BusHandler) DeleteBus(c *gin.Context) {
	bus, err := h.busService.DeleteBus(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted", "bus": bus})
}
