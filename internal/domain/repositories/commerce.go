// Package repositories defines the repository interfaces for commerce
// entities. These are the only read/write surface the application core has
// onto the record store; everything the dashboard computes is derived from
// the filtered finds, counts and distinct queries declared here.
package repositories

import (
	"time"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
)

// TimeRange bounds a created-at filter, inclusive on both ends.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ProductFilter narrows a product search. Zero values mean "no constraint".
type ProductFilter struct {
	Search   string  // substring match on name
	Category string  // exact category
	MaxPrice float64 // price ceiling
	Limit    int
	Offset   int
	SortAsc  bool // sort by price ascending; default is newest first
	ByPrice  bool // whether to sort by price at all
}

type ProductRepository interface {
	FindByID(id string) (*commerce.Product, error)
	FindLatest(limit int) ([]*commerce.Product, error)
	FindAll() ([]*commerce.Product, error)
	FindFiltered(filter ProductFilter) ([]*commerce.Product, int, error)
	FindCreatedBetween(r TimeRange) ([]*commerce.Product, error)
	CountAll() (int, error)
	CountByCategory(category string) (int, error)
	CountOutOfStock() (int, error)
	DistinctCategories() ([]string, error)
	Store(product *commerce.Product) error
	Update(product *commerce.Product) error
	Delete(id string) error
}

type OrderRepository interface {
	FindByID(id string) (*commerce.Order, error)
	FindAll() ([]*commerce.Order, error)
	FindByUser(userID string) ([]*commerce.Order, error)
	FindLatest(limit int) ([]*commerce.Order, error)
	FindCreatedBetween(r TimeRange) ([]*commerce.Order, error)
	CountByStatus(status commerce.OrderStatus) (int, error)
	Store(order *commerce.Order) error
	UpdateStatus(id string, status commerce.OrderStatus) error
	Delete(id string) error
}

type UserRepository interface {
	FindByID(id string) (*commerce.User, error)
	FindAll() ([]*commerce.User, error)
	FindCreatedBetween(r TimeRange) ([]*commerce.User, error)
	CountAll() (int, error)
	CountByGender(gender string) (int, error)
	CountByRole(role string) (int, error)
	Store(user *commerce.User) error
	Delete(id string) error
}

type CouponRepository interface {
	FindByID(id string) (*commerce.Coupon, error)
	FindByCode(code string) (*commerce.Coupon, error)
	FindAll() ([]*commerce.Coupon, error)
	Store(coupon *commerce.Coupon) error
	Delete(id string) error
}
