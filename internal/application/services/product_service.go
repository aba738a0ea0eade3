package services

import (
	"fmt"
	"time"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/domain/repositories"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/interfaces"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/invalidation"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/keys"
	"github.com/brightloom/storefront-go/internal/infrastructure/media"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
	"github.com/brightloom/storefront-go/internal/infrastructure/security"
	"github.com/brightloom/storefront-go/pkg/config"
)

// ProductService serves catalog views through the cache and applies
// invalidation on every catalog mutation.
type ProductService struct {
	products    repositories.ProductRepository
	cache       interfaces.Cache
	invalidator *invalidation.Coordinator
	images      *media.ImageProcessor
	logger      *logging.ChanneledLogger
}

func NewProductService(
	products repositories.ProductRepository,
	cache interfaces.Cache,
	invalidator *invalidation.Coordinator,
	images *media.ImageProcessor,
	logger *logging.ChanneledLogger,
) *ProductService {
	return &ProductService{
		products:    products,
		cache:       cache,
		invalidator: invalidator,
		images:      images,
		logger:      logger,
	}
}

// ProductListView is the serialized payload for cached product lists.
type ProductListView struct {
	Products []*commerce.Product `json:"products"`
}

// CategoryView is the serialized payload for the category list.
type CategoryView struct {
	Categories []string `json:"categories"`
}

// ProductDetailView is the serialized payload for a single product.
type ProductDetailView struct {
	Product *commerce.Product `json:"product"`
}

// SearchResult is one page of filtered products. Search results are not
// cached; the filter space is unbounded.
type SearchResult struct {
	Products   []*commerce.Product `json:"products"`
	TotalPages int                 `json:"totalPages"`
}

// Latest returns the newest products, cached as one view.
func (s *ProductService) Latest() ([]byte, error) {
	return cachedView(s.cache, keys.LatestProducts(), func() (any, error) {
		products, err := s.products.FindLatest(config.LatestProductCount)
		if err != nil {
			return nil, err
		}
		return &ProductListView{Products: products}, nil
	})
}

// Categories returns the distinct catalog categories, cached as one view.
func (s *ProductService) Categories() ([]byte, error) {
	return cachedView(s.cache, keys.Categories(), func() (any, error) {
		categories, err := s.products.DistinctCategories()
		if err != nil {
			return nil, err
		}
		return &CategoryView{Categories: categories}, nil
	})
}

// AdminProducts returns the full unfiltered catalog, cached as one view.
func (s *ProductService) AdminProducts() ([]byte, error) {
	return cachedView(s.cache, keys.AdminProducts(), func() (any, error) {
		products, err := s.products.FindAll()
		if err != nil {
			return nil, err
		}
		return &ProductListView{Products: products}, nil
	})
}

// Detail returns one product, cached per product ID.
func (s *ProductService) Detail(id string) ([]byte, error) {
	return cachedView(s.cache, keys.Product(id), func() (any, error) {
		product, err := s.products.FindByID(id)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrNotFound
		}
		return &ProductDetailView{Product: product}, nil
	})
}

// Search returns one page of products matching the filter, bypassing the
// cache.
func (s *ProductService) Search(filter repositories.ProductFilter) (*SearchResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = config.ProductsPerPage
	}

	products, total, err := s.products.FindFiltered(filter)
	if err != nil {
		return nil, err
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit
	return &SearchResult{Products: products, TotalPages: totalPages}, nil
}

// CreateProductInput carries the fields for a new catalog item. Photo is a
// base64 data URI.
type CreateProductInput struct {
	Name     string
	Category string
	Price    float64
	Stock    int
	Photo    string
}

func (s *ProductService) Create(input CreateProductInput) (*commerce.Product, error) {
	now := time.Now().UTC()
	product := &commerce.Product{
		ID:        security.GenerateULID(),
		Name:      input.Name,
		Price:     input.Price,
		Stock:     input.Stock,
		Category:  input.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.Photo != "" {
		photoURL, _, err := s.images.ProcessProductPhoto(input.Photo, product.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to process product photo: %w", err)
		}
		product.Photo = photoURL
	}

	if err := s.products.Store(product); err != nil {
		return nil, err
	}

	s.invalidator.Apply(invalidation.Mutation{Product: true, Admin: true})

	s.logger.Commerce().Info("Product created", "id", product.ID, "name", product.Name)
	return product, nil
}

// UpdateProductInput carries optional replacement fields; zero values leave
// the existing field untouched.
type UpdateProductInput struct {
	Name     string
	Category string
	Price    float64
	Stock    *int
	Photo    string
}

func (s *ProductService) Update(id string, input UpdateProductInput) (*commerce.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Photo != "" {
		if product.Photo != "" {
			if err := s.images.DeleteProductPhoto(product.Photo); err != nil {
				s.logger.Commerce().Warn("Failed to remove old product photo", "id", id, "error", err)
			}
		}
		photoURL, _, err := s.images.ProcessProductPhoto(input.Photo, product.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to process product photo: %w", err)
		}
		product.Photo = photoURL
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(product); err != nil {
		return nil, err
	}

	s.invalidator.Apply(invalidation.Mutation{
		Product:    true,
		Admin:      true,
		ProductIDs: []string{id},
	})
	return product, nil
}

func (s *ProductService) Delete(id string) error {
	product, err := s.products.FindByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}

	if product.Photo != "" {
		if err := s.images.DeleteProductPhoto(product.Photo); err != nil {
			s.logger.Commerce().Warn("Failed to remove product photo", "id", id, "error", err)
		}
	}

	if err := s.products.Delete(id); err != nil {
		return err
	}

	s.invalidator.Apply(invalidation.Mutation{
		Product:    true,
		Admin:      true,
		ProductIDs: []string{id},
	})

	s.logger.Commerce().Info("Product deleted", "id", id)
	return nil
}

// ReduceStock decrements stock for each ordered line item. Stock never goes
// below zero.
func (s *ProductService) ReduceStock(items []commerce.OrderItem) error {
	for _, item := range items {
		product, err := s.products.FindByID(item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("product %s: %w", item.ProductID, ErrNotFound)
		}

		product.Stock -= item.Quantity
		if product.Stock < 0 {
			product.Stock = 0
		}
		product.UpdatedAt = time.Now().UTC()

		if err := s.products.Update(product); err != nil {
			return err
		}
	}
	return nil
}
