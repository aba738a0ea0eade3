package services

import (
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/keys"
	"github.com/brightloom/storefront-go/internal/infrastructure/media"
)

// recordingMailer captures receipts instead of sending them.
type recordingMailer struct {
	mu    sync.Mutex
	sent  []string
	done  chan struct{}
}

func (m *recordingMailer) SendOrderReceipt(toEmail, name string, order *commerce.Order) error {
	m.mu.Lock()
	m.sent = append(m.sent, toEmail)
	m.mu.Unlock()
	if m.done != nil {
		close(m.done)
	}
	return nil
}

type orderFixture struct {
	svc      *OrderService
	products *ProductService
	env      *testEnv
	orders   *fakeOrderRepo
	prodRepo *fakeProductRepo
	users    *fakeUserRepo
	mailer   *recordingMailer
}

func newOrderFixture(t *testing.T) *orderFixture {
	env := newTestEnv(t)
	prodRepo := &fakeProductRepo{}
	orderRepo := &fakeOrderRepo{}
	userRepo := &fakeUserRepo{}
	mailer := &recordingMailer{}

	images := media.NewImageProcessor(t.TempDir(), 400)
	products := NewProductService(prodRepo, env.cache, env.invalidator, images, env.logger)
	svc := NewOrderService(orderRepo, userRepo, products, env.cache, env.invalidator, mailer, env.logger)

	return &orderFixture{
		svc:      svc,
		products: products,
		env:      env,
		orders:   orderRepo,
		prodRepo: prodRepo,
		users:    userRepo,
		mailer:   mailer,
	}
}

func (f *orderFixture) seed(t *testing.T) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, f.prodRepo.Store(testProduct("p1", "laptops", 1200, 4, now)))
	require.NoError(t, f.users.Store(testUser("u1", "female", commerce.RoleCustomer, now.AddDate(-30, 0, 0), now)))
	require.NoError(t, f.orders.Store(testOrder("o1", "u1", 150, commerce.StatusProcessing, now)))
	require.NoError(t, f.orders.Store(testOrder("o2", "other", 90, commerce.StatusShipped, now)))
}

// warm populates every cached view an order mutation might touch.
func (f *orderFixture) warm(t *testing.T) {
	t.Helper()
	for _, read := range []func() ([]byte, error){
		f.products.Latest,
		f.products.Categories,
		f.products.AdminProducts,
		func() ([]byte, error) { return f.products.Detail("p1") },
		f.svc.AllOrders,
		func() ([]byte, error) { return f.svc.MyOrders("u1") },
		func() ([]byte, error) { return f.svc.MyOrders("other") },
		func() ([]byte, error) { return f.svc.Detail("o1") },
		func() ([]byte, error) { return f.svc.Detail("o2") },
	} {
		_, err := read()
		require.NoError(t, err)
	}
}

func TestCreateOrderReducesStockAndPurgesViews(t *testing.T) {
	f := newOrderFixture(t)
	f.seed(t)
	f.warm(t)
	f.mailer.done = make(chan struct{})

	order, err := f.svc.Create(CreateOrderInput{
		UserID:       "u1",
		ShippingInfo: commerce.ShippingInfo{Address: "1 Main St", City: "Springfield", State: "IL", Country: "US", PinCode: "62701"},
		Items:        []commerce.OrderItem{{ProductID: "p1", Name: "product-p1", Price: 1200, Quantity: 2}},
		Subtotal:     2400,
		Tax:          240,
		Total:        2640,
	})
	require.NoError(t, err)
	assert.Equal(t, commerce.StatusProcessing, order.Status)

	p1, _ := f.prodRepo.FindByID("p1")
	assert.Equal(t, 2, p1.Stock)

	// Catalog, order and dashboard views are all stale now.
	assert.False(t, f.env.cache.Has(keys.LatestProducts()))
	assert.False(t, f.env.cache.Has(keys.Product("p1")))
	assert.False(t, f.env.cache.Has(keys.AllOrders()))
	assert.False(t, f.env.cache.Has(keys.UserOrders("u1")))

	// Another user's order views are untouched.
	assert.True(t, f.env.cache.Has(keys.UserOrders("other")))
	assert.True(t, f.env.cache.Has(keys.Order("o2")))

	select {
	case <-f.mailer.done:
	case <-time.After(time.Second):
		t.Fatal("receipt was never sent")
	}
	assert.Equal(t, []string{"u1@example.com"}, f.mailer.sent)
}

func TestProcessOrderAdvancesStatus(t *testing.T) {
	f := newOrderFixture(t)
	f.seed(t)

	order, err := f.svc.Process("o1")
	require.NoError(t, err)
	assert.Equal(t, commerce.StatusShipped, order.Status)

	order, err = f.svc.Process("o1")
	require.NoError(t, err)
	assert.Equal(t, commerce.StatusDelivered, order.Status)

	// Delivered is terminal; processing again leaves it delivered.
	order, err = f.svc.Process("o1")
	require.NoError(t, err)
	assert.Equal(t, commerce.StatusDelivered, order.Status)

	_, err = f.svc.Process("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Processing an order is an order-scoped mutation: catalog views must
// survive it while the order and dashboard views are purged.
func TestProcessOrderLeavesCatalogViewsIntact(t *testing.T) {
	f := newOrderFixture(t)
	f.seed(t)
	f.warm(t)

	_, err := f.svc.Process("o1")
	require.NoError(t, err)

	assert.False(t, f.env.cache.Has(keys.AllOrders()))
	assert.False(t, f.env.cache.Has(keys.UserOrders("u1")))
	assert.False(t, f.env.cache.Has(keys.Order("o1")))

	assert.True(t, f.env.cache.Has(keys.LatestProducts()))
	assert.True(t, f.env.cache.Has(keys.Categories()))
	assert.True(t, f.env.cache.Has(keys.AdminProducts()))
	assert.True(t, f.env.cache.Has(keys.Product("p1")))
	assert.True(t, f.env.cache.Has(keys.UserOrders("other")))
	assert.True(t, f.env.cache.Has(keys.Order("o2")))
}

func TestProcessedOrderViewReflectsNewStatus(t *testing.T) {
	f := newOrderFixture(t)
	f.seed(t)

	blob, err := f.svc.Detail("o1")
	require.NoError(t, err)

	var before OrderDetailView
	require.NoError(t, json.Unmarshal(blob, &before))
	require.Equal(t, commerce.StatusProcessing, before.Order.Status)

	_, err = f.svc.Process("o1")
	require.NoError(t, err)

	blob, err = f.svc.Detail("o1")
	require.NoError(t, err)

	var after OrderDetailView
	require.NoError(t, json.Unmarshal(blob, &after))
	assert.Equal(t, commerce.StatusShipped, after.Order.Status)
}

func TestDeleteOrderPurgesItsViews(t *testing.T) {
	f := newOrderFixture(t)
	f.seed(t)
	f.warm(t)

	require.NoError(t, f.svc.Delete("o1"))

	assert.False(t, f.env.cache.Has(keys.AllOrders()))
	assert.False(t, f.env.cache.Has(keys.UserOrders("u1")))
	assert.False(t, f.env.cache.Has(keys.Order("o1")))
	assert.True(t, f.env.cache.Has(keys.Order("o2")))

	gone, err := f.orders.FindByID("o1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, f.svc.Delete("o1"), ErrNotFound)
}

func TestCreateOrderWithoutMailerStillSucceeds(t *testing.T) {
	f := newOrderFixture(t)
	f.seed(t)
	f.svc.mailer = nil

	_, err := f.svc.Create(CreateOrderInput{
		UserID: "u1",
		Items:  []commerce.OrderItem{{ProductID: "p1", Quantity: 1}},
		Total:  1200,
	})
	require.NoError(t, err)
}
