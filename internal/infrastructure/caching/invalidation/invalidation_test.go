package invalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brightloom/storefront-go/internal/infrastructure/caching/keys"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/manager"
)

func seededCache() *manager.Manager {
	m := manager.NewManager(nil)
	seed := []keys.Key{
		keys.LatestProducts(), keys.Categories(), keys.AdminProducts(),
		keys.AllOrders(), keys.AllCoupons(),
		keys.AdminStats(), keys.AdminPieCharts(), keys.AdminBarCharts(), keys.AdminLineCharts(),
		keys.Product("p1"), keys.Product("p2"),
		keys.Order("o1"), keys.UserOrders("u1"),
	}
	for _, k := range seed {
		m.Set(k, []byte("cached"))
	}
	return m
}

func TestProductMutationPurgesProductKeys(t *testing.T) {
	cache := seededCache()
	c := NewCoordinator(cache, nil)

	c.Apply(Mutation{Product: true, ProductIDs: []string{"p1", "p2"}})

	assert.False(t, cache.Has(keys.LatestProducts()))
	assert.False(t, cache.Has(keys.Categories()))
	assert.False(t, cache.Has(keys.AdminProducts()))
	assert.False(t, cache.Has(keys.Product("p1")))
	assert.False(t, cache.Has(keys.Product("p2")))

	// Order views are untouched by a pure product mutation.
	assert.True(t, cache.Has(keys.AllOrders()))
	assert.True(t, cache.Has(keys.AdminStats()))
	assert.True(t, cache.Has(keys.Order("o1")))
}

func TestProductMutationWithoutIDs(t *testing.T) {
	cache := seededCache()
	c := NewCoordinator(cache, nil)

	c.Apply(Mutation{Product: true})

	assert.False(t, cache.Has(keys.LatestProducts()))
	assert.True(t, cache.Has(keys.Product("p1")), "unnamed product details survive")
}

func TestOrderMutationPurgesOrderAndDashboardKeys(t *testing.T) {
	cache := seededCache()
	c := NewCoordinator(cache, nil)

	c.Apply(Mutation{Order: true, Admin: true, UserID: "u1", OrderID: "o1"})

	assert.False(t, cache.Has(keys.AllOrders()))
	assert.False(t, cache.Has(keys.AdminStats()))
	assert.False(t, cache.Has(keys.AdminPieCharts()))
	assert.False(t, cache.Has(keys.AdminBarCharts()))
	assert.False(t, cache.Has(keys.AdminLineCharts()))
	assert.False(t, cache.Has(keys.UserOrders("u1")))
	assert.False(t, cache.Has(keys.Order("o1")))

	// Product views survive an order-only mutation.
	assert.True(t, cache.Has(keys.Categories()))
	assert.True(t, cache.Has(keys.Product("p1")))
}

func TestAdminMutationPurgesDashboardOnly(t *testing.T) {
	cache := seededCache()
	c := NewCoordinator(cache, nil)

	c.Apply(Mutation{Admin: true})

	for _, k := range keys.AdminDashboard() {
		assert.False(t, cache.Has(k))
	}
	assert.True(t, cache.Has(keys.AllOrders()))
	assert.True(t, cache.Has(keys.LatestProducts()))
}

func TestCouponMutationPurgesCouponList(t *testing.T) {
	cache := seededCache()
	c := NewCoordinator(cache, nil)

	c.Apply(Mutation{Coupon: true})

	assert.False(t, cache.Has(keys.AllCoupons()))
	assert.True(t, cache.Has(keys.AdminStats()))
}

func TestEmptyMutationIsNoOp(t *testing.T) {
	cache := seededCache()
	before := cache.Stats().Entries

	NewCoordinator(cache, nil).Apply(Mutation{})

	assert.Equal(t, before, cache.Stats().Entries)
	assert.Empty(t, KeysFor(Mutation{}))
}

func TestApplyIsIdempotent(t *testing.T) {
	cacheOnce := seededCache()
	cacheTwice := seededCache()
	m := Mutation{Product: true, Order: true, Admin: true, UserID: "u1", OrderID: "o1", ProductIDs: []string{"p1"}}

	NewCoordinator(cacheOnce, nil).Apply(m)

	c := NewCoordinator(cacheTwice, nil)
	c.Apply(m)
	c.Apply(m)

	assert.Equal(t, cacheOnce.Stats().Entries, cacheTwice.Stats().Entries)
}

func TestKeysForDeduplicatesDashboardKeys(t *testing.T) {
	// Order and admin flags both name the dashboard keys; the combined set
	// carries each exactly once.
	ks := KeysFor(Mutation{Order: true, Admin: true})

	seen := make(map[keys.Key]int)
	for _, k := range ks {
		seen[k]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "key %s appears %d times", k.String(), n)
	}
}
