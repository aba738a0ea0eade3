package commerce

import (
	"database/sql"
	"fmt"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/domain/repositories"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
)

const orderColumns = `id, user_id, shipping_address, shipping_city, shipping_state, shipping_country,
	shipping_pin_code, subtotal, tax, shipping_charges, discount, total, status, created_at, updated_at`

type OrderRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewOrderRepository(db *sql.DB, logger *logging.ChanneledLogger) *OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

func scanOrder(row interface{ Scan(...any) error }) (*commerce.Order, error) {
	var o commerce.Order
	err := row.Scan(&o.ID, &o.UserID,
		&o.ShippingInfo.Address, &o.ShippingInfo.City, &o.ShippingInfo.State,
		&o.ShippingInfo.Country, &o.ShippingInfo.PinCode,
		&o.Subtotal, &o.Tax, &o.ShippingCharges, &o.Discount, &o.Total,
		&o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindByID(id string) (*commerce.Order, error) {
	row := r.db.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = ?", id)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", id, err)
	}

	if err := r.attachItems([]*commerce.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) FindAll() ([]*commerce.Order, error) {
	return r.queryOrders("SELECT " + orderColumns + " FROM orders ORDER BY created_at DESC")
}

func (r *OrderRepository) FindByUser(userID string) ([]*commerce.Order, error) {
	return r.queryOrders("SELECT "+orderColumns+" FROM orders WHERE user_id = ? ORDER BY created_at DESC", userID)
}

func (r *OrderRepository) FindLatest(limit int) ([]*commerce.Order, error) {
	return r.queryOrders("SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC LIMIT ?", limit)
}

func (r *OrderRepository) FindCreatedBetween(tr repositories.TimeRange) ([]*commerce.Order, error) {
	return r.queryOrders("SELECT "+orderColumns+" FROM orders WHERE created_at >= ? AND created_at <= ?",
		tr.Start, tr.End)
}

func (r *OrderRepository) CountByStatus(status commerce.OrderStatus) (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM orders WHERE status = ?", status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders with status %s: %w", status, err)
	}
	return count, nil
}

// Store writes the order and its line items in a single transaction.
func (r *OrderRepository) Store(order *commerce.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO orders (id, user_id, shipping_address, shipping_city, shipping_state,
		shipping_country, shipping_pin_code, subtotal, tax, shipping_charges, discount, total, status,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID,
		order.ShippingInfo.Address, order.ShippingInfo.City, order.ShippingInfo.State,
		order.ShippingInfo.Country, order.ShippingInfo.PinCode,
		order.Subtotal, order.Tax, order.ShippingCharges, order.Discount, order.Total,
		order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to store order %s: %w", order.ID, err)
	}

	for _, item := range order.Items {
		_, err = tx.Exec(`INSERT INTO order_items (order_id, product_id, name, photo, price, quantity)
			VALUES (?, ?, ?, ?, ?, ?)`,
			order.ID, item.ProductID, item.Name, item.Photo, item.Price, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to store item %s of order %s: %w", item.ProductID, order.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order %s: %w", order.ID, err)
	}

	if r.logger != nil {
		r.logger.Database().Debug("Order stored", "id", order.ID, "items", len(order.Items))
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(id string, status commerce.OrderStatus) error {
	result, err := r.db.Exec("UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of order %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update of order %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

func (r *OrderRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM order_items WHERE order_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete items of order %s: %w", id, err)
	}
	if _, err := tx.Exec("DELETE FROM orders WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete of order %s: %w", id, err)
	}
	return nil
}

func (r *OrderRepository) queryOrders(query string, args ...any) ([]*commerce.Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*commerce.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads line items for the given orders in one query.
func (r *OrderRepository) attachItems(orders []*commerce.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[string]*commerce.Order, len(orders))
	placeholders := ""
	args := make([]any, 0, len(orders))
	for i, order := range orders {
		byID[order.ID] = order
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args = append(args, order.ID)
	}

	rows, err := r.db.Query(
		"SELECT order_id, product_id, name, photo, price, quantity FROM order_items WHERE order_id IN ("+placeholders+")",
		args...)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item commerce.OrderItem
		var photo sql.NullString
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &photo, &item.Price, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		item.Photo = photo.String
		if order, ok := byID[orderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return rows.Err()
}
