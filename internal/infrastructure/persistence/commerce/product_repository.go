// Package commerce provides the SQL-backed repositories for the commerce
// record store.
package commerce

import (
	"database/sql"
	"fmt"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/domain/repositories"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
)

const productColumns = "id, name, photo, price, stock, category, created_at, updated_at"

type ProductRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewProductRepository(db *sql.DB, logger *logging.ChanneledLogger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

func scanProduct(row interface{ Scan(...any) error }) (*commerce.Product, error) {
	var p commerce.Product
	var photo sql.NullString
	err := row.Scan(&p.ID, &p.Name, &photo, &p.Price, &p.Stock, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Photo = photo.String
	return &p, nil
}

func (r *ProductRepository) FindByID(id string) (*commerce.Product, error) {
	row := r.db.QueryRow("SELECT "+productColumns+" FROM products WHERE id = ?", id)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", id, err)
	}
	return product, nil
}

func (r *ProductRepository) FindLatest(limit int) ([]*commerce.Product, error) {
	rows, err := r.db.Query("SELECT "+productColumns+" FROM products ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *ProductRepository) FindAll() ([]*commerce.Product, error) {
	rows, err := r.db.Query("SELECT " + productColumns + " FROM products ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// FindFiltered returns one page of matching products plus the total match
// count, for pagination.
func (r *ProductRepository) FindFiltered(filter repositories.ProductFilter) ([]*commerce.Product, int, error) {
	where := " WHERE 1=1"
	var args []any

	if filter.Search != "" {
		where += " AND name LIKE '%' || ? || '%'"
		args = append(args, filter.Search)
	}
	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.MaxPrice > 0 {
		where += " AND price <= ?"
		args = append(args, filter.MaxPrice)
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered products: %w", err)
	}

	order := " ORDER BY created_at DESC"
	if filter.ByPrice {
		if filter.SortAsc {
			order = " ORDER BY price ASC"
		} else {
			order = " ORDER BY price DESC"
		}
	}

	query := "SELECT " + productColumns + " FROM products" + where + order
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query filtered products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) FindCreatedBetween(tr repositories.TimeRange) ([]*commerce.Product, error) {
	rows, err := r.db.Query("SELECT "+productColumns+" FROM products WHERE created_at >= ? AND created_at <= ?",
		tr.Start, tr.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by time range: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *ProductRepository) CountAll() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *ProductRepository) CountByCategory(category string) (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM products WHERE category = ?", category).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products in category %s: %w", category, err)
	}
	return count, nil
}

func (r *ProductRepository) CountOutOfStock() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM products WHERE stock = 0").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count out-of-stock products: %w", err)
	}
	return count, nil
}

func (r *ProductRepository) DistinctCategories() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT category FROM products ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *ProductRepository) Store(product *commerce.Product) error {
	_, err := r.db.Exec(`INSERT INTO products (id, name, photo, price, stock, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Photo, product.Price, product.Stock,
		product.Category, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to store product %s: %w", product.ID, err)
	}

	if r.logger != nil {
		r.logger.Database().Debug("Product stored", "id", product.ID, "category", product.Category)
	}
	return nil
}

func (r *ProductRepository) Update(product *commerce.Product) error {
	result, err := r.db.Exec(`UPDATE products SET name = ?, photo = ?, price = ?, stock = ?, category = ?, updated_at = ?
		WHERE id = ?`,
		product.Name, product.Photo, product.Price, product.Stock, product.Category,
		product.UpdatedAt, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of product %s: %w", product.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("product %s not found", product.ID)
	}
	return nil
}

func (r *ProductRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

func collectProducts(rows *sql.Rows) ([]*commerce.Product, error) {
	var products []*commerce.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
