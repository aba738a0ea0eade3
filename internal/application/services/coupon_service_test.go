package services

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightloom/storefront-go/internal/infrastructure/caching/keys"
)

func newCouponFixture(t *testing.T) (*CouponService, *testEnv, *fakeCouponRepo) {
	env := newTestEnv(t)
	repo := &fakeCouponRepo{}
	svc := NewCouponService(repo, env.cache, env.invalidator, env.logger)
	return svc, env, repo
}

func TestCreateCouponRejectsDuplicateCodes(t *testing.T) {
	svc, _, _ := newCouponFixture(t)

	_, err := svc.Create("SAVE20", 20)
	require.NoError(t, err)

	_, err = svc.Create("SAVE20", 30)
	assert.ErrorIs(t, err, ErrCouponExists)
}

func TestApplyResolvesDiscount(t *testing.T) {
	svc, _, _ := newCouponFixture(t)

	_, err := svc.Create("SAVE20", 20)
	require.NoError(t, err)

	discount, err := svc.Apply("SAVE20")
	require.NoError(t, err)
	assert.Equal(t, 20.0, discount)

	_, err = svc.Apply("NOPE")
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

// The coupon list is cached; creating or deleting a coupon must purge it so
// the admin panel never shows a stale list.
func TestCouponMutationsPurgeTheCachedList(t *testing.T) {
	svc, env, _ := newCouponFixture(t)

	_, err := svc.Create("SAVE20", 20)
	require.NoError(t, err)

	blob, err := svc.All()
	require.NoError(t, err)
	require.True(t, env.cache.Has(keys.AllCoupons()))

	var view CouponListView
	require.NoError(t, json.Unmarshal(blob, &view))
	require.Len(t, view.Coupons, 1)

	coupon, err := svc.Create("SAVE50", 50)
	require.NoError(t, err)
	assert.False(t, env.cache.Has(keys.AllCoupons()))

	blob, err = svc.All()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(blob, &view))
	assert.Len(t, view.Coupons, 2)

	require.NoError(t, svc.Delete(coupon.ID))
	assert.False(t, env.cache.Has(keys.AllCoupons()))

	assert.ErrorIs(t, svc.Delete(coupon.ID), ErrNotFound)
}
