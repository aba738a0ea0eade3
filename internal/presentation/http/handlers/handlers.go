// Package handlers provides the HTTP handlers for the storefront API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightloom/storefront-go/internal/application/services"
)

const jsonContentType = "application/json; charset=utf-8"

// respondError maps service errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCouponExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCoupon):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// respondView writes a cached serialized view payload as-is.
func respondView(c *gin.Context, blob []byte, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, jsonContentType, blob)
}
