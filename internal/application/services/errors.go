// Package services contains the application services that orchestrate the
// repositories, the view cache and invalidation.
package services

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrCouponExists is returned when creating a coupon whose code is taken.
	ErrCouponExists = errors.New("coupon code already exists")

	// ErrInvalidCoupon is returned when applying an unknown coupon code.
	ErrInvalidCoupon = errors.New("invalid coupon code")

	// ErrInvalidCredentials is returned on a failed admin sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
