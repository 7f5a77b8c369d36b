package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/nextstop/nextstop-backend/internal/services"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// AddFeedback records a rating against a booking
// POST /api/v1/feedback
func (h *FeedbackHandler) AddFeedback(c *gin.Context) {
	var req models.AddFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	feedback, err := h.feedbackService.AddFeedback(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// GetAllFeedbacks lists every feedback entry
// GET /api/v1/feedback
func (h *FeedbackHandler) GetAllFeedbacks(c *gin.Context) {
	feedbacks, err := h.feedbackService.GetAllFeedbacks()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedbacks)
}

// GetFeedbackByID returns one feedback entry
// GET /api/v1/feedback/:id
func (h *FeedbackHandler) GetFeedbackByID(c *gin.Context) {
	feedback, err := h.feedbackService.GetFeedbackByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

// GetFeedbacksByBooking lists feedback left on a booking
// GET /api/v1/feedback/booking/:bookingId
func (h *FeedbackHandler) GetFeedbacksByBooking(c *gin.Context) {
	feedbacks, err := h.feedbackService.GetFeedbacksByBookingID(c.Param("bookingId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedbacks)
}

// GetFeedbacksByBus lists feedback across a bus's trips
// GET /api/v1/feedback/bus/:busId
func (h *FeedbackHandler) GetFeedbacksByBus(c *gin.Context) {
	feedbacks, err := h.feedbackService.GetFeedbacksByBusID(c.Param("busId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedbacks)
}

// UpdateFeedback changes a rating or its text
// PUT /api/v1/feedback/:id
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	var req models.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	feedback, err := h.feedbackService.UpdateFeedback(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}
