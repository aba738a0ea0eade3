package services

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/domain/repositories"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/keys"
	"github.com/brightloom/storefront-go/internal/infrastructure/media"
)

func newProductFixture(t *testing.T) (*ProductService, *testEnv, *fakeProductRepo) {
	env := newTestEnv(t)
	repo := &fakeProductRepo{}
	images := media.NewImageProcessor(t.TempDir(), 400)
	svc := NewProductService(repo, env.cache, env.invalidator, images, env.logger)
	return svc, env, repo
}

func seedCatalog(t *testing.T, repo *fakeProductRepo) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, repo.Store(testProduct("p1", "laptops", 1200, 4, now.Add(-time.Hour))))
	require.NoError(t, repo.Store(testProduct("p2", "phones", 800, 10, now.Add(-2*time.Hour))))
	require.NoError(t, repo.Store(testProduct("p3", "phones", 600, 0, now.Add(-3*time.Hour))))
}

func TestLatestIsReadThrough(t *testing.T) {
	svc, env, repo := newProductFixture(t)
	seedCatalog(t, repo)

	require.False(t, env.cache.Has(keys.LatestProducts()))

	first, err := svc.Latest()
	require.NoError(t, err)
	require.True(t, env.cache.Has(keys.LatestProducts()))

	var view ProductListView
	require.NoError(t, json.Unmarshal(first, &view))
	require.Len(t, view.Products, 3)
	assert.Equal(t, "p1", view.Products[0].ID)

	// A second read serves the stored payload even after the store moves on.
	require.NoError(t, repo.Store(testProduct("p4", "tablets", 300, 2, time.Now().UTC())))
	second, err := svc.Latest()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDetailMissReturnsNotFoundAndCachesNothing(t *testing.T) {
	svc, env, _ := newProductFixture(t)

	_, err := svc.Detail("ghost")
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, env.cache.Has(keys.Product("ghost")))
}

func TestCreatePurgesListViewsOnly(t *testing.T) {
	svc, env, repo := newProductFixture(t)
	seedCatalog(t, repo)

	_, err := svc.Latest()
	require.NoError(t, err)
	_, err = svc.Detail("p1")
	require.NoError(t, err)

	_, err = svc.Create(CreateProductInput{Name: "new", Category: "laptops", Price: 500, Stock: 3})
	require.NoError(t, err)

	assert.False(t, env.cache.Has(keys.LatestProducts()))
	assert.False(t, env.cache.Has(keys.Categories()))
	assert.False(t, env.cache.Has(keys.AdminProducts()))
	// A create touches no existing product, so its detail entry survives.
	assert.True(t, env.cache.Has(keys.Product("p1")))
}

func TestUpdatePurgesTheProductEntry(t *testing.T) {
	svc, env, repo := newProductFixture(t)
	seedCatalog(t, repo)

	_, err := svc.Detail("p1")
	require.NoError(t, err)
	_, err = svc.Detail("p2")
	require.NoError(t, err)

	stock := 7
	_, err = svc.Update("p1", UpdateProductInput{Stock: &stock})
	require.NoError(t, err)

	assert.False(t, env.cache.Has(keys.Product("p1")))
	assert.True(t, env.cache.Has(keys.Product("p2")))

	updated, err := repo.FindByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)
}

func TestDeleteRemovesRecordAndEntry(t *testing.T) {
	svc, env, repo := newProductFixture(t)
	seedCatalog(t, repo)

	_, err := svc.Detail("p3")
	require.NoError(t, err)

	require.NoError(t, svc.Delete("p3"))
	assert.False(t, env.cache.Has(keys.Product("p3")))

	gone, err := repo.FindByID("p3")
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, svc.Delete("p3"), ErrNotFound)
}

func TestSearchPaginates(t *testing.T) {
	svc, _, repo := newProductFixture(t)
	seedCatalog(t, repo)

	result, err := svc.Search(repositories.ProductFilter{Category: "phones", Limit: 1})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, 2, result.TotalPages)
}

func TestReduceStockClampsAtZero(t *testing.T) {
	svc, _, repo := newProductFixture(t)
	seedCatalog(t, repo)

	err := svc.ReduceStock([]commerce.OrderItem{
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p2", Quantity: 99},
	})
	require.NoError(t, err)

	p1, _ := repo.FindByID("p1")
	p2, _ := repo.FindByID("p2")
	assert.Equal(t, 1, p1.Stock)
	assert.Equal(t, 0, p2.Stock)

	err = svc.ReduceStock([]commerce.OrderItem{{ProductID: "ghost", Quantity: 1}})
	require.ErrorIs(t, err, ErrNotFound)
}
