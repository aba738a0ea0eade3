package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightloom/storefront-go/internal/application/services"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
)

// CouponHandlers serves the discount code endpoints.
type CouponHandlers struct {
	coupons *services.CouponService
	logger  *logging.ChanneledLogger
}

func NewCouponHandlers(coupons *services.CouponService, logger *logging.ChanneledLogger) *CouponHandlers {
	return &CouponHandlers{
		coupons: coupons,
		logger:  logger,
	}
}

// NewCouponRequest is the body for a new discount code.
type NewCouponRequest struct {
	Code   string  `json:"code" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// NewCoupon creates a discount code.
func (h *CouponHandlers) NewCoupon(c *gin.Context) {
	var req NewCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	coupon, err := h.coupons.Create(req.Code, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"coupon": coupon})
}

// ApplyDiscount resolves a coupon code to its discount amount.
func (h *CouponHandlers) ApplyDiscount(c *gin.Context) {
	code := c.Query("coupon")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coupon code is required"})
		return
	}

	discount, err := h.coupons.Apply(code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discount": discount})
}

// GetAllCoupons returns every coupon for the admin panel.
func (h *CouponHandlers) GetAllCoupons(c *gin.Context) {
	blob, err := h.coupons.All()
	respondView(c, blob, err)
}

// DeleteCoupon removes a discount code.
func (h *CouponHandlers) DeleteCoupon(c *gin.Context) {
	if err := h.coupons.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
