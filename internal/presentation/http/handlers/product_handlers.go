package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brightloom/storefront-go/internal/application/services"
	"github.com/brightloom/storefront-go/internal/domain/repositories"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
	"github.com/brightloom/storefront-go/pkg/config"
)

// ProductHandlers serves the catalog endpoints.
type ProductHandlers struct {
	products *services.ProductService
	logger   *logging.ChanneledLogger
}

func NewProductHandlers(products *services.ProductService, logger *logging.ChanneledLogger) *ProductHandlers {
	return &ProductHandlers{
		products: products,
		logger:   logger,
	}
}

// GetLatest returns the newest products.
func (h *ProductHandlers) GetLatest(c *gin.Context) {
	blob, err := h.products.Latest()
	respondView(c, blob, err)
}

// GetCategories returns the distinct catalog categories.
func (h *ProductHandlers) GetCategories(c *gin.Context) {
	blob, err := h.products.Categories()
	respondView(c, blob, err)
}

// GetAdminProducts returns the full catalog for the admin panel.
func (h *ProductHandlers) GetAdminProducts(c *gin.Context) {
	blob, err := h.products.AdminProducts()
	respondView(c, blob, err)
}

// GetProduct returns one product by ID.
func (h *ProductHandlers) GetProduct(c *gin.Context) {
	blob, err := h.products.Detail(c.Param("id"))
	respondView(c, blob, err)
}

// Search returns one page of filtered products.
func (h *ProductHandlers) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	maxPrice, _ := strconv.ParseFloat(c.DefaultQuery("price", "0"), 64)

	filter := repositories.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		MaxPrice: maxPrice,
		Limit:    config.ProductsPerPage,
		Offset:   (page - 1) * config.ProductsPerPage,
		ByPrice:  c.Query("sort") != "",
		SortAsc:  c.Query("sort") == "asc",
	}

	result, err := h.products.Search(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateProductRequest is the body for a new catalog item.
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Stock    int     `json:"stock" binding:"gte=0"`
	Photo    string  `json:"photo"`
}

// CreateProduct adds a catalog item.
func (h *ProductHandlers) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	product, err := h.products.Create(services.CreateProductInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
		Photo:    req.Photo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProductRequest carries optional replacement fields.
type UpdateProductRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    *int    `json:"stock"`
	Photo    string  `json:"photo"`
}

// UpdateProduct modifies a catalog item.
func (h *ProductHandlers) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	product, err := h.products.Update(c.Param("id"), services.UpdateProductInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
		Photo:    req.Photo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct removes a catalog item.
func (h *ProductHandlers) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
