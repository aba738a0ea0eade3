package services

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/domain/repositories"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/invalidation"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/manager"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/performance"
)

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	cfg.DefaultLevel = slog.LevelError + 4

	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger
}

type testEnv struct {
	cache       *manager.Manager
	invalidator *invalidation.Coordinator
	logger      *logging.ChanneledLogger
	tracker     *performance.Tracker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := newTestLogger(t)
	cache := manager.NewManager(logger)
	return &testEnv{
		cache:       cache,
		invalidator: invalidation.NewCoordinator(cache, logger),
		logger:      logger,
		tracker:     performance.NewTracker(performance.DefaultTrackerConfig()),
	}
}

// fakeProductRepo is an in-memory ProductRepository.
type fakeProductRepo struct {
	mu       sync.Mutex
	products []*commerce.Product
}

func (r *fakeProductRepo) FindByID(id string) (*commerce.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindLatest(limit int) ([]*commerce.Product, error) {
	all, _ := r.FindAll()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeProductRepo) FindAll() ([]*commerce.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*commerce.Product, len(r.products))
	copy(out, r.products)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProductRepo) FindFiltered(filter repositories.ProductFilter) ([]*commerce.Product, int, error) {
	all, _ := r.FindAll()
	var matched []*commerce.Product
	for _, p := range all {
		if filter.Search != "" && !strings.Contains(p.Name, filter.Search) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
			continue
		}
		matched = append(matched, p)
	}
	total := len(matched)
	if filter.Offset > len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *fakeProductRepo) FindCreatedBetween(tr repositories.TimeRange) ([]*commerce.Product, error) {
	all, _ := r.FindAll()
	var out []*commerce.Product
	for _, p := range all {
		if !p.CreatedAt.Before(tr.Start) && !p.CreatedAt.After(tr.End) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountAll() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products), nil
}

func (r *fakeProductRepo) CountByCategory(category string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, p := range r.products {
		if p.Category == category {
			count++
		}
	}
	return count, nil
}

func (r *fakeProductRepo) CountOutOfStock() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, p := range r.products {
		if p.Stock == 0 {
			count++
		}
	}
	return count, nil
}

func (r *fakeProductRepo) DistinctCategories() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	var categories []string
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *fakeProductRepo) Store(product *commerce.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products = append(r.products, &cp)
	return nil
}

func (r *fakeProductRepo) Update(product *commerce.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == product.ID {
			cp := *product
			r.products[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeOrderRepo is an in-memory OrderRepository.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*commerce.Order
}

func (r *fakeOrderRepo) FindByID(id string) (*commerce.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindAll() ([]*commerce.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*commerce.Order, len(r.orders))
	copy(out, r.orders)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) FindByUser(userID string) ([]*commerce.Order, error) {
	all, _ := r.FindAll()
	var out []*commerce.Order
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindLatest(limit int) ([]*commerce.Order, error) {
	all, _ := r.FindAll()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeOrderRepo) FindCreatedBetween(tr repositories.TimeRange) ([]*commerce.Order, error) {
	all, _ := r.FindAll()
	var out []*commerce.Order
	for _, o := range all {
		if !o.CreatedAt.Before(tr.Start) && !o.CreatedAt.After(tr.End) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) CountByStatus(status commerce.OrderStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, o := range r.orders {
		if o.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeOrderRepo) Store(order *commerce.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(id string, status commerce.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeOrderRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users []*commerce.User
}

func (r *fakeUserRepo) FindByID(id string) (*commerce.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll() ([]*commerce.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*commerce.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *fakeUserRepo) FindCreatedBetween(tr repositories.TimeRange) ([]*commerce.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*commerce.User
	for _, u := range r.users {
		if !u.CreatedAt.Before(tr.Start) && !u.CreatedAt.After(tr.End) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountAll() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

func (r *fakeUserRepo) CountByGender(gender string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, u := range r.users {
		if u.Gender == gender {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) CountByRole(role string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) Store(user *commerce.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == user.ID {
			cp := *user
			r.users[i] = &cp
			return nil
		}
	}
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeCouponRepo is an in-memory CouponRepository.
type fakeCouponRepo struct {
	mu      sync.Mutex
	coupons []*commerce.Coupon
}

func (r *fakeCouponRepo) FindByID(id string) (*commerce.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCouponRepo) FindByCode(code string) (*commerce.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCouponRepo) FindAll() ([]*commerce.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*commerce.Coupon, len(r.coupons))
	copy(out, r.coupons)
	return out, nil
}

func (r *fakeCouponRepo) Store(coupon *commerce.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *coupon
	r.coupons = append(r.coupons, &cp)
	return nil
}

func (r *fakeCouponRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.coupons {
		if c.ID == id {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			return nil
		}
	}
	return nil
}

// test data helpers

func testProduct(id, category string, price float64, stock int, createdAt time.Time) *commerce.Product {
	return &commerce.Product{
		ID:        id,
		Name:      "product-" + id,
		Price:     price,
		Stock:     stock,
		Category:  category,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func testOrder(id, userID string, total float64, status commerce.OrderStatus, createdAt time.Time) *commerce.Order {
	return &commerce.Order{
		ID:        id,
		UserID:    userID,
		Items:     []commerce.OrderItem{{ProductID: "p1", Name: "product-p1", Price: total, Quantity: 1}},
		Subtotal:  total,
		Total:     total,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func testUser(id, gender, role string, dob, createdAt time.Time) *commerce.User {
	return &commerce.User{
		ID:        id,
		Name:      "user-" + id,
		Email:     id + "@example.com",
		Gender:    gender,
		Role:      role,
		DOB:       dob,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}
