package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightloom/storefront-go/internal/application/services"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
)

// PaymentHandlers serves the checkout payment endpoint.
type PaymentHandlers struct {
	payments *services.PaymentService
	logger   *logging.ChanneledLogger
}

func NewPaymentHandlers(payments *services.PaymentService, logger *logging.ChanneledLogger) *PaymentHandlers {
	return &PaymentHandlers{
		payments: payments,
		logger:   logger,
	}
}

// CreatePaymentRequest carries the amount to charge.
type CreatePaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreatePayment returns a client secret for the given amount.
func (h *PaymentHandlers) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	secret, err := h.payments.CreatePayment(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"clientSecret": secret})
}
