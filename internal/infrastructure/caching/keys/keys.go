// Package keys defines the closed set of cache key shapes used by the
// storefront cache. Keys are constructed, never assembled from raw strings,
// so a typo'd or colliding key cannot be introduced outside this package.
package keys

import "fmt"

type shape int

const (
	shapeLatestProducts shape = iota
	shapeCategories
	shapeAdminProducts
	shapeAllOrders
	shapeAllCoupons
	shapeAdminStats
	shapeAdminPieCharts
	shapeAdminBarCharts
	shapeAdminLineCharts
	shapeProduct
	shapeOrder
	shapeUserOrders
)

// Key identifies one cache entry. It is comparable and safe to use as a map
// key; entity-scoped shapes carry the entity id alongside the shape tag.
type Key struct {
	shape shape
	id    string
}

// String renders the wire name of the key, matching the names the admin
// frontend has always used.
func (k Key) String() string {
	switch k.shape {
	case shapeLatestProducts:
		return "latest-products"
	case shapeCategories:
		return "categories"
	case shapeAdminProducts:
		return "all-products"
	case shapeAllOrders:
		return "all-orders"
	case shapeAllCoupons:
		return "all-coupons"
	case shapeAdminStats:
		return "admin-stats"
	case shapeAdminPieCharts:
		return "admin-pie-charts"
	case shapeAdminBarCharts:
		return "admin-bar-charts"
	case shapeAdminLineCharts:
		return "admin-line-charts"
	case shapeProduct:
		return "product-" + k.id
	case shapeOrder:
		return "order-" + k.id
	case shapeUserOrders:
		return "my-orders-" + k.id
	}
	return fmt.Sprintf("unknown-%d-%s", k.shape, k.id)
}

// Singleton keys.

func LatestProducts() Key  { return Key{shape: shapeLatestProducts} }
func Categories() Key      { return Key{shape: shapeCategories} }
func AdminProducts() Key   { return Key{shape: shapeAdminProducts} }
func AllOrders() Key       { return Key{shape: shapeAllOrders} }
func AllCoupons() Key      { return Key{shape: shapeAllCoupons} }
func AdminStats() Key      { return Key{shape: shapeAdminStats} }
func AdminPieCharts() Key  { return Key{shape: shapeAdminPieCharts} }
func AdminBarCharts() Key  { return Key{shape: shapeAdminBarCharts} }
func AdminLineCharts() Key { return Key{shape: shapeAdminLineCharts} }

// Entity-scoped keys.

func Product(id string) Key        { return Key{shape: shapeProduct, id: id} }
func Order(id string) Key          { return Key{shape: shapeOrder, id: id} }
func UserOrders(userID string) Key { return Key{shape: shapeUserOrders, id: userID} }

// AdminDashboard returns the four admin chart view keys, the set every
// order or admin mutation must purge together.
func AdminDashboard() []Key {
	return []Key{AdminStats(), AdminPieCharts(), AdminBarCharts(), AdminLineCharts()}
}
