package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightloom/storefront-go/internal/application/services"
	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
	"github.com/brightloom/storefront-go/internal/presentation/http/middleware"
)

// OrderHandlers serves the order lifecycle endpoints.
type OrderHandlers struct {
	orders *services.OrderService
	logger *logging.ChanneledLogger
}

func NewOrderHandlers(orders *services.OrderService, logger *logging.ChanneledLogger) *OrderHandlers {
	return &OrderHandlers{
		orders: orders,
		logger: logger,
	}
}

// GetMyOrders returns the signed-in user's orders.
func (h *OrderHandlers) GetMyOrders(c *gin.Context) {
	session, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	blob, err := h.orders.MyOrders(session.UserID)
	respondView(c, blob, err)
}

// GetAllOrders returns every order for the admin panel.
func (h *OrderHandlers) GetAllOrders(c *gin.Context) {
	blob, err := h.orders.AllOrders()
	respondView(c, blob, err)
}

// GetOrder returns one order by ID.
func (h *OrderHandlers) GetOrder(c *gin.Context) {
	blob, err := h.orders.Detail(c.Param("id"))
	respondView(c, blob, err)
}

// NewOrderRequest is the checkout payload.
type NewOrderRequest struct {
	ShippingInfo    commerce.ShippingInfo `json:"shippingInfo" binding:"required"`
	Items           []commerce.OrderItem  `json:"items" binding:"required,min=1"`
	Subtotal        float64               `json:"subtotal" binding:"required,gt=0"`
	Tax             float64               `json:"tax" binding:"gte=0"`
	ShippingCharges float64               `json:"shippingCharges" binding:"gte=0"`
	Discount        float64               `json:"discount" binding:"gte=0"`
	Total           float64               `json:"total" binding:"required,gt=0"`
}

// NewOrder places an order for the signed-in user.
func (h *OrderHandlers) NewOrder(c *gin.Context) {
	session, exists := middleware.GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	var req NewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orders.Create(services.CreateOrderInput{
		UserID:          session.UserID,
		ShippingInfo:    req.ShippingInfo,
		Items:           req.Items,
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		ShippingCharges: req.ShippingCharges,
		Discount:        req.Discount,
		Total:           req.Total,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ProcessOrder advances an order to its next status.
func (h *OrderHandlers) ProcessOrder(c *gin.Context) {
	order, err := h.orders.Process(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// DeleteOrder removes an order.
func (h *OrderHandlers) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
