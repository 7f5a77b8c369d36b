package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/nextstop/nextstop-backend/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// InitiatePayment records a payment attempt against a booking
// POST /api/v1/payments
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req models.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payment, err := h.paymentService.InitiatePayment(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPaymentStatus returns the latest payment on a booking
// GET /api/v1/payments/booking/:bookingId
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	payment, err := h.paymentService.GetPaymentStatus(c.Param("bookingId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// InitiateRefund refunds the successful payment on a booking
// POST /api/v1/payments/booking/:bookingId/refund
func (h *PaymentHandler) InitiateRefund(c *gin.Context) {
	payment, err := h.paymentService.InitiateRefund(c.Param("bookingId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}
