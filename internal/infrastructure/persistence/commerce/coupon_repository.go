package commerce

import (
	"database/sql"
	"fmt"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
)

const couponColumns = "id, code, amount, created_at"

type CouponRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewCouponRepository(db *sql.DB, logger *logging.ChanneledLogger) *CouponRepository {
	return &CouponRepository{
		db:     db,
		logger: logger,
	}
}

func scanCoupon(row interface{ Scan(...any) error }) (*commerce.Coupon, error) {
	var c commerce.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.Amount, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) FindByID(id string) (*commerce.Coupon, error) {
	row := r.db.QueryRow("SELECT "+couponColumns+" FROM coupons WHERE id = ?", id)
	coupon, err := scanCoupon(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load coupon %s: %w", id, err)
	}
	return coupon, nil
}

func (r *CouponRepository) FindByCode(code string) (*commerce.Coupon, error) {
	row := r.db.QueryRow("SELECT "+couponColumns+" FROM coupons WHERE code = ?", code)
	coupon, err := scanCoupon(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load coupon by code: %w", err)
	}
	return coupon, nil
}

func (r *CouponRepository) FindAll() ([]*commerce.Coupon, error) {
	rows, err := r.db.Query("SELECT " + couponColumns + " FROM coupons ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*commerce.Coupon
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, coupon)
	}
	return coupons, rows.Err()
}

func (r *CouponRepository) Store(coupon *commerce.Coupon) error {
	_, err := r.db.Exec("INSERT INTO coupons (id, code, amount, created_at) VALUES (?, ?, ?, ?)",
		coupon.ID, coupon.Code, coupon.Amount, coupon.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store coupon %s: %w", coupon.Code, err)
	}

	if r.logger != nil {
		r.logger.Database().Debug("Coupon stored", "code", coupon.Code)
	}
	return nil
}

func (r *CouponRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM coupons WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon %s: %w", id, err)
	}
	return nil
}
