package services

import (
	"strings"
	"time"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/domain/repositories"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/interfaces"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/invalidation"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/keys"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
	"github.com/brightloom/storefront-go/internal/infrastructure/security"
)

// CouponService manages discount codes. The cached coupon list is purged on
// every coupon mutation.
type CouponService struct {
	coupons     repositories.CouponRepository
	cache       interfaces.Cache
	invalidator *invalidation.Coordinator
	logger      *logging.ChanneledLogger
}

func NewCouponService(
	coupons repositories.CouponRepository,
	cache interfaces.Cache,
	invalidator *invalidation.Coordinator,
	logger *logging.ChanneledLogger,
) *CouponService {
	return &CouponService{
		coupons:     coupons,
		cache:       cache,
		invalidator: invalidator,
		logger:      logger,
	}
}

// CouponListView is the serialized payload for the cached coupon list.
type CouponListView struct {
	Coupons []*commerce.Coupon `json:"coupons"`
}

func (s *CouponService) Create(code string, amount float64) (*commerce.Coupon, error) {
	code = strings.TrimSpace(code)

	existing, err := s.coupons.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponExists
	}

	coupon := &commerce.Coupon{
		ID:        security.GenerateULID(),
		Code:      code,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.coupons.Store(coupon); err != nil {
		return nil, err
	}

	s.invalidator.Apply(invalidation.Mutation{Coupon: true})

	s.logger.Commerce().Info("Coupon created", "code", code, "amount", amount)
	return coupon, nil
}

// Apply resolves a coupon code to its discount amount.
func (s *CouponService) Apply(code string) (float64, error) {
	coupon, err := s.coupons.FindByCode(strings.TrimSpace(code))
	if err != nil {
		return 0, err
	}
	if coupon == nil {
		return 0, ErrInvalidCoupon
	}
	return coupon.Amount, nil
}

// All returns every coupon, cached as one admin view.
func (s *CouponService) All() ([]byte, error) {
	return cachedView(s.cache, keys.AllCoupons(), func() (any, error) {
		coupons, err := s.coupons.FindAll()
		if err != nil {
			return nil, err
		}
		return &CouponListView{Coupons: coupons}, nil
	})
}

func (s *CouponService) Delete(id string) error {
	coupon, err := s.coupons.FindByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrNotFound
	}

	if err := s.coupons.Delete(id); err != nil {
		return err
	}

	s.invalidator.Apply(invalidation.Mutation{Coupon: true})

	s.logger.Commerce().Info("Coupon deleted", "code", coupon.Code)
	return nil
}
