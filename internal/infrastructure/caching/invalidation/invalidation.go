// Package invalidation maps a mutation against the record store to the
// exact set of cache keys that mutation can have made stale, and purges
// them. Deletions are unconditional, order-independent and idempotent, so
// applying a mutation twice leaves the cache in the same state as once.
package invalidation

import (
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/interfaces"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/keys"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
)

// Mutation describes which domains a successful create, update, delete or
// status transition touched. It is built at the mutation site, consumed
// once, and never persisted.
type Mutation struct {
	Product bool
	Order   bool
	Admin   bool
	Coupon  bool

	UserID     string
	OrderID    string
	ProductIDs []string
}

// KeysFor translates a mutation into the cache keys it must purge,
// deduplicated, in a stable order. A mutation with no flags set maps to no
// keys at all.
func KeysFor(m Mutation) []keys.Key {
	var out []keys.Key
	seen := make(map[keys.Key]struct{})

	add := func(k keys.Key) {
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	if m.Product {
		add(keys.LatestProducts())
		add(keys.Categories())
		add(keys.AdminProducts())
		for _, id := range m.ProductIDs {
			add(keys.Product(id))
		}
	}

	if m.Order {
		add(keys.AllOrders())
		for _, k := range keys.AdminDashboard() {
			add(k)
		}
		if m.UserID != "" {
			add(keys.UserOrders(m.UserID))
		}
		if m.OrderID != "" {
			add(keys.Order(m.OrderID))
		}
	}

	if m.Admin {
		for _, k := range keys.AdminDashboard() {
			add(k)
		}
	}

	if m.Coupon {
		add(keys.AllCoupons())
	}

	return out
}

// Coordinator executes invalidations against the cache.
type Coordinator struct {
	cache  interfaces.Cache
	logger *logging.ChanneledLogger
}

// NewCoordinator creates an invalidation coordinator bound to a cache.
func NewCoordinator(cache interfaces.Cache, logger *logging.ChanneledLogger) *Coordinator {
	return &Coordinator{
		cache:  cache,
		logger: logger,
	}
}

// Apply deletes every key the mutation invalidates. It returns only once
// all deletions are done, so callers can respond to the mutating request
// knowing no stale view survives it.
func (c *Coordinator) Apply(m Mutation) {
	purged := KeysFor(m)
	for _, k := range purged {
		c.cache.Delete(k)
	}

	if c.logger != nil && len(purged) > 0 {
		names := make([]string, len(purged))
		for i, k := range purged {
			names[i] = k.String()
		}
		c.logger.Cache().Debug("Invalidated cache keys",
			"count", len(purged),
			"keys", names,
			"orderId", m.OrderID,
			"userId", m.UserID)
	}
}
