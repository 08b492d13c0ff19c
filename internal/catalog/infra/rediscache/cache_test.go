package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	*memory.Store
	productLists int
	productGets  int
}

func (c *countingStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	c.productLists++
	return c.Store.ListProducts(ctx)
}

func (c *countingStore) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	c.productGets++
	return c.Store.GetProduct(ctx, id)
}

func setup(t *testing.T) (*Repo, *countingStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	store := &countingStore{Store: memory.NewSeeded()}
	return New(store, client, time.Minute, WithLogger(logger.Discard())), store, mr
}

func TestListProductsIsCached(t *testing.T) {
	repo, store, mr := setup(t)
	ctx := context.Background()

	first, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	second, err := repo.ListProducts(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, store.productLists)
	assert.Len(t, second, len(first))
	assert.True(t, mr.Exists("storefront:catalog:products"))

	mr.FastForward(2 * time.Minute)
	_, err = repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.productLists, "expired entry reloads")
}

func TestMutationsInvalidate(t *testing.T) {
	repo, store, _ := setup(t)
	ctx := context.Background()

	p, err := repo.GetProduct(ctx, "1")
	require.NoError(t, err)
	_, err = repo.ListProducts(ctx)
	require.NoError(t, err)

	p.Price = 1000
	_, err = repo.UpdateProduct(ctx, p)
	require.NoError(t, err)

	got, err := repo.GetProduct(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Price)
	assert.Equal(t, 2, store.productGets)

	list, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.productLists)
	assert.Equal(t, int64(1000), list[0].Price)
}

func TestDeleteCategoryDropsCachedProducts(t *testing.T) {
	repo, _, mr := setup(t)
	ctx := context.Background()

	_, err := repo.GetProduct(ctx, "9")
	require.NoError(t, err)
	require.True(t, mr.Exists("storefront:catalog:product:9"))

	require.NoError(t, repo.DeleteCategory(ctx, "beauty"))
	assert.False(t, mr.Exists("storefront:catalog:product:9"))

	p, err := repo.GetProduct(ctx, "9")
	require.NoError(t, err)
	assert.Empty(t, p.CategoryID)
}

func TestRedisDownFallsThrough(t *testing.T) {
	repo, store, mr := setup(t)
	mr.Close()

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 12)
	assert.Equal(t, 1, store.productLists)

	_, err = repo.CreateCategory(context.Background(), domain.Category{Name: "Китоблар"})
	assert.NoError(t, err)
}
