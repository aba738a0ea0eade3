package services

import (
	"time"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/domain/repositories"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/interfaces"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/invalidation"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/keys"
	"github.com/brightloom/storefront-go/internal/infrastructure/email"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
	"github.com/brightloom/storefront-go/internal/infrastructure/security"
)

// OrderService handles the order lifecycle. Every mutation invalidates the
// affected order and dashboard views before returning.
type OrderService struct {
	orders      repositories.OrderRepository
	users       repositories.UserRepository
	products    *ProductService
	cache       interfaces.Cache
	invalidator *invalidation.Coordinator
	mailer      email.Service
	logger      *logging.ChanneledLogger
}

// NewOrderService creates the order service. mailer may be nil when no email
// provider is configured; receipts are then skipped.
func NewOrderService(
	orders repositories.OrderRepository,
	users repositories.UserRepository,
	products *ProductService,
	cache interfaces.Cache,
	invalidator *invalidation.Coordinator,
	mailer email.Service,
	logger *logging.ChanneledLogger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		users:       users,
		products:    products,
		cache:       cache,
		invalidator: invalidator,
		mailer:      mailer,
		logger:      logger,
	}
}

// OrderListView is the serialized payload for cached order lists.
type OrderListView struct {
	Orders []*commerce.Order `json:"orders"`
}

// OrderDetailView is the serialized payload for a single order.
type OrderDetailView struct {
	Order *commerce.Order `json:"order"`
}

// MyOrders returns the orders of one user, cached per user.
func (s *OrderService) MyOrders(userID string) ([]byte, error) {
	return cachedView(s.cache, keys.UserOrders(userID), func() (any, error) {
		orders, err := s.orders.FindByUser(userID)
		if err != nil {
			return nil, err
		}
		return &OrderListView{Orders: orders}, nil
	})
}

// AllOrders returns every order, cached as one admin view.
func (s *OrderService) AllOrders() ([]byte, error) {
	return cachedView(s.cache, keys.AllOrders(), func() (any, error) {
		orders, err := s.orders.FindAll()
		if err != nil {
			return nil, err
		}
		return &OrderListView{Orders: orders}, nil
	})
}

// Detail returns one order, cached per order ID.
func (s *OrderService) Detail(id string) ([]byte, error) {
	return cachedView(s.cache, keys.Order(id), func() (any, error) {
		order, err := s.orders.FindByID(id)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, ErrNotFound
		}
		return &OrderDetailView{Order: order}, nil
	})
}

// CreateOrderInput carries a new order as submitted at checkout.
type CreateOrderInput struct {
	UserID          string
	ShippingInfo    commerce.ShippingInfo
	Items           []commerce.OrderItem
	Subtotal        float64
	Tax             float64
	ShippingCharges float64
	Discount        float64
	Total           float64
}

// Create stores the order, reduces stock for each line item, invalidates
// the affected catalog, order and dashboard views, and sends the receipt.
func (s *OrderService) Create(input CreateOrderInput) (*commerce.Order, error) {
	now := time.Now().UTC()
	order := &commerce.Order{
		ID:              security.GenerateULID(),
		UserID:          input.UserID,
		ShippingInfo:    input.ShippingInfo,
		Items:           input.Items,
		Subtotal:        input.Subtotal,
		Tax:             input.Tax,
		ShippingCharges: input.ShippingCharges,
		Discount:        input.Discount,
		Total:           input.Total,
		Status:          commerce.StatusProcessing,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Store(order); err != nil {
		return nil, err
	}

	if err := s.products.ReduceStock(order.Items); err != nil {
		return nil, err
	}

	productIDs := make([]string, len(order.Items))
	for i, item := range order.Items {
		productIDs[i] = item.ProductID
	}

	s.invalidator.Apply(invalidation.Mutation{
		Product:    true,
		Order:      true,
		Admin:      true,
		UserID:     order.UserID,
		ProductIDs: productIDs,
	})

	s.sendReceipt(order)

	s.logger.Commerce().Info("Order placed", "id", order.ID, "user", order.UserID, "total", order.Total)
	return order, nil
}

// Process advances the order to its next status.
func (s *OrderService) Process(id string) (*commerce.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	order.Status = order.Status.Next()
	if err := s.orders.UpdateStatus(id, order.Status); err != nil {
		return nil, err
	}

	s.invalidator.Apply(invalidation.Mutation{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID,
	})

	s.logger.Commerce().Info("Order processed", "id", id, "status", order.Status)
	return order, nil
}

func (s *OrderService) Delete(id string) error {
	order, err := s.orders.FindByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}

	if err := s.orders.Delete(id); err != nil {
		return err
	}

	s.invalidator.Apply(invalidation.Mutation{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID,
	})

	s.logger.Commerce().Info("Order deleted", "id", id)
	return nil
}

// sendReceipt emails the order confirmation off the request path. Failures
// are logged, never surfaced to the buyer.
func (s *OrderService) sendReceipt(order *commerce.Order) {
	if s.mailer == nil {
		return
	}

	user, err := s.users.FindByID(order.UserID)
	if err != nil || user == nil {
		s.logger.Email().Warn("Receipt skipped, user not found", "order", order.ID, "user", order.UserID)
		return
	}

	go func() {
		if err := s.mailer.SendOrderReceipt(user.Email, user.Name, order); err != nil {
			s.logger.Email().Error("Failed to send order receipt", "order", order.ID, "error", err)
		}
	}()
}
