package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/redis/go-redis/v9"
)

const (
	keyProducts   = "products"
	keyCategories = "categories"
)

// Repo is a cache-aside decorator over a catalog repository. Redis failures
// are logged and the call falls through to the wrapped store.
type Repo struct {
	next   app.Repo
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

type Option func(*Repo)

func WithPrefix(prefix string) Option { return func(r *Repo) { r.prefix = prefix } }

func WithLogger(log *slog.Logger) Option { return func(r *Repo) { r.log = log } }

func New(next app.Repo, client redis.UniversalClient, ttl time.Duration, opts ...Option) *Repo {
	r := &Repo{
		next:   next,
		client: client,
		prefix: "storefront:catalog:",
		ttl:    ttl,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repo) key(parts ...string) string {
	k := r.prefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

func (r *Repo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return cached(ctx, r, r.key(keyProducts), r.next.ListProducts)
}

func (r *Repo) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return cached(ctx, r, r.key("product", id), func(ctx context.Context) (domain.Product, error) {
		return r.next.GetProduct(ctx, id)
	})
}

func (r *Repo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return cached(ctx, r, r.key(keyCategories), r.next.ListCategories)
}

func (r *Repo) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	return cached(ctx, r, r.key("category", id), func(ctx context.Context) (domain.Category, error) {
		return r.next.GetCategory(ctx, id)
	})
}

func (r *Repo) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	out, err := r.next.CreateProduct(ctx, p)
	if err == nil {
		r.invalidate(ctx, r.key(keyProducts))
	}
	return out, err
}

func (r *Repo) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	out, err := r.next.UpdateProduct(ctx, p)
	if err == nil {
		r.invalidate(ctx, r.key(keyProducts), r.key("product", p.ID))
	}
	return out, err
}

func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	err := r.next.DeleteProduct(ctx, id)
	if err == nil {
		r.invalidate(ctx, r.key(keyProducts), r.key("product", id))
	}
	return err
}

func (r *Repo) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	out, err := r.next.CreateCategory(ctx, c)
	if err == nil {
		r.invalidate(ctx, r.key(keyCategories))
	}
	return out, err
}

func (r *Repo) UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	out, err := r.next.UpdateCategory(ctx, c)
	if err == nil {
		r.invalidate(ctx, r.key(keyCategories), r.key("category", c.ID))
	}
	return out, err
}

// DeleteCategory also drops every cached product, since products of the
// deleted category lose their category id.
func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	err := r.next.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}

	keys := []string{r.key(keyCategories), r.key("category", id), r.key(keyProducts)}
	iter := r.client.Scan(ctx, 0, r.key("product", "*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.log.Warn("catalog cache scan failed", "error", err)
	}
	r.invalidate(ctx, keys...)
	return nil
}

func (r *Repo) invalidate(ctx context.Context, keys ...string) {
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("catalog cache invalidation failed", "keys", keys, "error", err)
	}
}

func cached[T any](ctx context.Context, r *Repo, key string, load func(context.Context) (T, error)) (T, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if jerr := json.Unmarshal(raw, &v); jerr == nil {
			return v, nil
		}
		r.log.Warn("catalog cache entry corrupt", "key", key)
	case !errors.Is(err, redis.Nil):
		r.log.Warn("catalog cache read failed", "key", key, "error", err)
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if b, jerr := json.Marshal(v); jerr == nil {
		if serr := r.client.Set(ctx, key, b, r.ttl).Err(); serr != nil {
			r.log.Warn("catalog cache write failed", "key", key, "error", serr)
		}
	}
	return v, nil
}

var _ app.Repo = (*Repo)(nil)
