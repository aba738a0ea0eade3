package services

import (
	"fmt"
	"math"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/brightloom/storefront-go/internal/domain/analytics"
	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/domain/repositories"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/interfaces"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/keys"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/performance"
	"github.com/brightloom/storefront-go/pkg/config"
)

// Marketing spend is modeled as a fixed share of gross revenue.
const marketingCostShare = 0.3

// StatsService assembles the four admin dashboard views. Each view is
// computed from the record store on a cache miss, stored as one serialized
// payload, and served bit-identical until a mutation purges it.
type StatsService struct {
	products repositories.ProductRepository
	orders   repositories.OrderRepository
	users    repositories.UserRepository
	cache    interfaces.Cache
	perf     *performance.Tracker
	logger   *logging.ChanneledLogger
	now      func() time.Time
}

func NewStatsService(
	products repositories.ProductRepository,
	orders repositories.OrderRepository,
	users repositories.UserRepository,
	cache interfaces.Cache,
	perf *performance.Tracker,
	logger *logging.ChanneledLogger,
) *StatsService {
	return &StatsService{
		products: products,
		orders:   orders,
		users:    users,
		cache:    cache,
		perf:     perf,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ChangePercent is the month-over-month delta for the headline counters.
type ChangePercent struct {
	Revenue int `json:"revenue"`
	Product int `json:"product"`
	User    int `json:"user"`
	Order   int `json:"order"`
}

// Counts are the all-time headline figures.
type Counts struct {
	Revenue float64 `json:"revenue"`
	Product int     `json:"product"`
	User    int     `json:"user"`
	Order   int     `json:"order"`
}

// DashboardChart is the six-month order and revenue series.
type DashboardChart struct {
	Order   []int     `json:"order"`
	Revenue []float64 `json:"revenue"`
}

// UserRatio splits the user base by gender.
type UserRatio struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// TransactionSummary is the dashboard projection of a recent order.
type TransactionSummary struct {
	ID       string               `json:"id"`
	Discount float64              `json:"discount"`
	Amount   float64              `json:"amount"`
	Quantity int                  `json:"quantity"`
	Status   commerce.OrderStatus `json:"status"`
}

// DashboardStats is the main admin dashboard view.
type DashboardStats struct {
	ChangePercent      ChangePercent             `json:"changePercent"`
	Count              Counts                    `json:"count"`
	Chart              DashboardChart            `json:"chart"`
	CategoryCount      []analytics.CategoryShare `json:"categoryCount"`
	UserRatio          UserRatio                 `json:"userRatio"`
	LatestTransactions []TransactionSummary      `json:"latestTransactions"`
}

// OrderFulfillment splits orders by lifecycle status.
type OrderFulfillment struct {
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
}

// StockAvailability splits the catalog by stock presence.
type StockAvailability struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

// RevenueDistribution breaks gross revenue into its cost components.
type RevenueDistribution struct {
	NetMargin      float64 `json:"netMargin"`
	Discount       float64 `json:"discount"`
	ProductionCost float64 `json:"productionCost"`
	Burnt          float64 `json:"burnt"`
	MarketingCost  float64 `json:"marketingCost"`
}

// AgeGroups buckets users by age bracket.
type AgeGroups struct {
	Teen  int `json:"teen"`
	Adult int `json:"adult"`
	Old   int `json:"old"`
}

// RoleSplit separates admins from customers.
type RoleSplit struct {
	Admin    int `json:"admin"`
	Customer int `json:"customer"`
}

// PieCharts is the admin pie chart view.
type PieCharts struct {
	OrderFulfillment    OrderFulfillment          `json:"orderFulfillment"`
	ProductCategories   []analytics.CategoryShare `json:"productCategories"`
	StockAvailability   StockAvailability         `json:"stockAvailability"`
	RevenueDistribution RevenueDistribution       `json:"revenueDistribution"`
	UsersAgeGroup       AgeGroups                 `json:"usersAgeGroup"`
	AdminCustomer       RoleSplit                 `json:"adminCustomer"`
}

// BarCharts is the admin bar chart view: six months of products and users,
// twelve months of orders.
type BarCharts struct {
	Products []int `json:"products"`
	Users    []int `json:"users"`
	Orders   []int `json:"orders"`
}

// LineCharts is the admin line chart view over the last twelve months.
type LineCharts struct {
	Users    []int     `json:"users"`
	Products []int     `json:"products"`
	Orders   []int     `json:"orders"`
	Discount []float64 `json:"discount"`
	Revenue  []float64 `json:"revenue"`
}

// Dashboard returns the cached main dashboard view.
func (s *StatsService) Dashboard() ([]byte, error) {
	return s.cachedStats(keys.AdminStats(), "dashboard-stats", func() (any, error) {
		return s.buildDashboard()
	})
}

// Pie returns the cached pie chart view.
func (s *StatsService) Pie() ([]byte, error) {
	return s.cachedStats(keys.AdminPieCharts(), "pie-charts", func() (any, error) {
		return s.buildPie()
	})
}

// Bar returns the cached bar chart view.
func (s *StatsService) Bar() ([]byte, error) {
	return s.cachedStats(keys.AdminBarCharts(), "bar-charts", func() (any, error) {
		return s.buildBar()
	})
}

// Line returns the cached line chart view.
func (s *StatsService) Line() ([]byte, error) {
	return s.cachedStats(keys.AdminLineCharts(), "line-charts", func() (any, error) {
		return s.buildLine()
	})
}

// cachedStats is the read-through path for the dashboard views, with
// cache hit/miss accounting on the performance marker.
func (s *StatsService) cachedStats(key keys.Key, operation string, build func() (any, error)) ([]byte, error) {
	marker := s.perf.StartOperation(operation)
	defer marker.Complete()

	if blob, found := s.cache.Get(key); found {
		marker.AddCacheHit()
		marker.SetSuccess(true)
		return blob, nil
	}
	marker.AddCacheMiss()

	view, err := build()
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	blob, err := json.Marshal(view)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to encode view %s: %w", key, err)
	}

	s.cache.Set(key, blob)
	marker.SetSuccess(true)

	s.logger.Analytics().Debug("Dashboard view rebuilt", "key", key.String(), "duration", time.Since(marker.StartTime))
	return blob, nil
}

func (s *StatsService) buildDashboard() (*DashboardStats, error) {
	now := s.now()
	thisMonth := repositories.TimeRange{Start: monthStart(now), End: now}
	lastMonth := repositories.TimeRange{
		Start: monthStart(now).AddDate(0, -1, 0),
		End:   monthStart(now).Add(-time.Nanosecond),
	}
	sixMonths := repositories.TimeRange{Start: monthStart(now).AddDate(0, -5, 0), End: now}

	var (
		thisMonthProducts, lastMonthProducts []*commerce.Product
		thisMonthUsers, lastMonthUsers       []*commerce.User
		thisMonthOrders, lastMonthOrders     []*commerce.Order
		sixMonthOrders, allOrders, latest    []*commerce.Order
		categories                           []string
		productCount, userCount, femaleCount int
	)

	g := new(errgroup.Group)
	g.Go(func() (err error) { thisMonthProducts, err = s.products.FindCreatedBetween(thisMonth); return })
	g.Go(func() (err error) { lastMonthProducts, err = s.products.FindCreatedBetween(lastMonth); return })
	g.Go(func() (err error) { thisMonthUsers, err = s.users.FindCreatedBetween(thisMonth); return })
	g.Go(func() (err error) { lastMonthUsers, err = s.users.FindCreatedBetween(lastMonth); return })
	g.Go(func() (err error) { thisMonthOrders, err = s.orders.FindCreatedBetween(thisMonth); return })
	g.Go(func() (err error) { lastMonthOrders, err = s.orders.FindCreatedBetween(lastMonth); return })
	g.Go(func() (err error) { sixMonthOrders, err = s.orders.FindCreatedBetween(sixMonths); return })
	g.Go(func() (err error) { allOrders, err = s.orders.FindAll(); return })
	g.Go(func() (err error) { latest, err = s.orders.FindLatest(config.LatestOrderCount); return })
	g.Go(func() (err error) { categories, err = s.products.DistinctCategories(); return })
	g.Go(func() (err error) { productCount, err = s.products.CountAll(); return })
	g.Go(func() (err error) { userCount, err = s.users.CountAll(); return })
	g.Go(func() (err error) { femaleCount, err = s.users.CountByGender("female"); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categoryShares, err := s.categoryShares(categories, productCount)
	if err != nil {
		return nil, err
	}

	transactions := make([]TransactionSummary, len(latest))
	for i, order := range latest {
		transactions[i] = TransactionSummary{
			ID:       order.ID,
			Discount: order.Discount,
			Amount:   order.Total,
			Quantity: len(order.Items),
			Status:   order.Status,
		}
	}

	return &DashboardStats{
		ChangePercent: ChangePercent{
			Revenue: analytics.PercentChange(sumTotals(thisMonthOrders), sumTotals(lastMonthOrders)),
			Product: analytics.PercentChange(float64(len(thisMonthProducts)), float64(len(lastMonthProducts))),
			User:    analytics.PercentChange(float64(len(thisMonthUsers)), float64(len(lastMonthUsers))),
			Order:   analytics.PercentChange(float64(len(thisMonthOrders)), float64(len(lastMonthOrders))),
		},
		Count: Counts{
			Revenue: sumTotals(allOrders),
			Product: productCount,
			User:    userCount,
			Order:   len(allOrders),
		},
		Chart: DashboardChart{
			Order:   analytics.CountByMonth(orderTimes(sixMonthOrders), 6, now),
			Revenue: analytics.SumByMonth(orderPoints(sixMonthOrders, orderTotal), 6, now),
		},
		CategoryCount: categoryShares,
		UserRatio: UserRatio{
			Male:   userCount - femaleCount,
			Female: femaleCount,
		},
		LatestTransactions: transactions,
	}, nil
}

func (s *StatsService) buildPie() (*PieCharts, error) {
	var (
		processing, shipped, delivered int
		categories                     []string
		productCount, outOfStock       int
		allOrders                      []*commerce.Order
		allUsers                       []*commerce.User
		adminCount, customerCount      int
	)

	g := new(errgroup.Group)
	g.Go(func() (err error) { processing, err = s.orders.CountByStatus(commerce.StatusProcessing); return })
	g.Go(func() (err error) { shipped, err = s.orders.CountByStatus(commerce.StatusShipped); return })
	g.Go(func() (err error) { delivered, err = s.orders.CountByStatus(commerce.StatusDelivered); return })
	g.Go(func() (err error) { categories, err = s.products.DistinctCategories(); return })
	g.Go(func() (err error) { productCount, err = s.products.CountAll(); return })
	g.Go(func() (err error) { outOfStock, err = s.products.CountOutOfStock(); return })
	g.Go(func() (err error) { allOrders, err = s.orders.FindAll(); return })
	g.Go(func() (err error) { allUsers, err = s.users.FindAll(); return })
	g.Go(func() (err error) { adminCount, err = s.users.CountByRole(commerce.RoleAdmin); return })
	g.Go(func() (err error) { customerCount, err = s.users.CountByRole(commerce.RoleCustomer); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categoryShares, err := s.categoryShares(categories, productCount)
	if err != nil {
		return nil, err
	}

	var gross, discount, productionCost, burnt float64
	for _, order := range allOrders {
		gross += order.Total
		discount += order.Discount
		productionCost += order.ShippingCharges
		burnt += order.Tax
	}
	// Marketing spend and the derived margin are reported in whole units.
	marketing := math.Round(gross * marketingCostShare)

	now := s.now()
	ages := AgeGroups{}
	for _, user := range allUsers {
		switch age := user.AgeAt(now); {
		case age < 20:
			ages.Teen++
		case age <= 40:
			ages.Adult++
		default:
			ages.Old++
		}
	}

	return &PieCharts{
		OrderFulfillment: OrderFulfillment{
			Processing: processing,
			Shipped:    shipped,
			Delivered:  delivered,
		},
		ProductCategories: categoryShares,
		StockAvailability: StockAvailability{
			InStock:    productCount - outOfStock,
			OutOfStock: outOfStock,
		},
		RevenueDistribution: RevenueDistribution{
			NetMargin:      math.Round(gross - discount - productionCost - burnt - marketing),
			Discount:       discount,
			ProductionCost: productionCost,
			Burnt:          burnt,
			MarketingCost:  marketing,
		},
		UsersAgeGroup: ages,
		AdminCustomer: RoleSplit{Admin: adminCount, Customer: customerCount},
	}, nil
}

func (s *StatsService) buildBar() (*BarCharts, error) {
	now := s.now()
	sixMonths := repositories.TimeRange{Start: monthStart(now).AddDate(0, -5, 0), End: now}
	twelveMonths := repositories.TimeRange{Start: monthStart(now).AddDate(0, -11, 0), End: now}

	var (
		products []*commerce.Product
		users    []*commerce.User
		orders   []*commerce.Order
	)

	g := new(errgroup.Group)
	g.Go(func() (err error) { products, err = s.products.FindCreatedBetween(sixMonths); return })
	g.Go(func() (err error) { users, err = s.users.FindCreatedBetween(sixMonths); return })
	g.Go(func() (err error) { orders, err = s.orders.FindCreatedBetween(twelveMonths); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BarCharts{
		Products: analytics.CountByMonth(productTimes(products), 6, now),
		Users:    analytics.CountByMonth(userTimes(users), 6, now),
		Orders:   analytics.CountByMonth(orderTimes(orders), 12, now),
	}, nil
}

func (s *StatsService) buildLine() (*LineCharts, error) {
	now := s.now()
	twelveMonths := repositories.TimeRange{Start: monthStart(now).AddDate(0, -11, 0), End: now}

	var (
		products []*commerce.Product
		users    []*commerce.User
		orders   []*commerce.Order
	)

	g := new(errgroup.Group)
	g.Go(func() (err error) { products, err = s.products.FindCreatedBetween(twelveMonths); return })
	g.Go(func() (err error) { users, err = s.users.FindCreatedBetween(twelveMonths); return })
	g.Go(func() (err error) { orders, err = s.orders.FindCreatedBetween(twelveMonths); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &LineCharts{
		Users:    analytics.CountByMonth(userTimes(users), 12, now),
		Products: analytics.CountByMonth(productTimes(products), 12, now),
		Orders:   analytics.CountByMonth(orderTimes(orders), 12, now),
		Discount: analytics.SumByMonth(orderPoints(orders, orderDiscount), 12, now),
		Revenue:  analytics.SumByMonth(orderPoints(orders, orderTotal), 12, now),
	}, nil
}

// categoryShares counts products per category and expresses each as a
// percentage of the whole catalog.
func (s *StatsService) categoryShares(categories []string, total int) ([]analytics.CategoryShare, error) {
	counts := make(map[string]int, len(categories))
	for _, category := range categories {
		count, err := s.products.CountByCategory(category)
		if err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return analytics.Shares(categories, counts, total), nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func orderTotal(o *commerce.Order) float64    { return o.Total }
func orderDiscount(o *commerce.Order) float64 { return o.Discount }

func sumTotals(orders []*commerce.Order) float64 {
	return analytics.SumTotals(orderPoints(orders, orderTotal))
}

func orderPoints(orders []*commerce.Order, value func(*commerce.Order) float64) []analytics.MetricPoint {
	points := make([]analytics.MetricPoint, len(orders))
	for i, o := range orders {
		points[i] = analytics.MetricPoint{At: o.CreatedAt, Value: value(o)}
	}
	return points
}

func orderTimes(orders []*commerce.Order) []time.Time {
	times := make([]time.Time, len(orders))
	for i, o := range orders {
		times[i] = o.CreatedAt
	}
	return times
}

func productTimes(products []*commerce.Product) []time.Time {
	times := make([]time.Time, len(products))
	for i, p := range products {
		times[i] = p.CreatedAt
	}
	return times
}

func userTimes(users []*commerce.User) []time.Time {
	times := make([]time.Time, len(users))
	for i, u := range users {
		times[i] = u.CreatedAt
	}
	return times
}
