package storage

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/storefrontlabs/storefront-api/internal/cart"
	"github.com/storefrontlabs/storefront-api/internal/catalog"
	"github.com/storefrontlabs/storefront-api/internal/users"
)

func lineItem(id string, price string, qty int) cart.LineItem {
	p, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return cart.LineItem{
		Product: catalog.Product{
			ID:       catalog.ProductID(id),
			Title:    "Product " + id,
			Price:    p,
			Image:    "https://img/" + id + ".jpg",
			Category: "jewelery",
			Rating:   catalog.Rating{Rate: 4.2, Count: 17},
		},
		Quantity: qty,
	}
}

func assertRoundTrip(t *testing.T, store interface {
	LoadCart(context.Context, string) ([]cart.LineItem, error)
	SaveCart(context.Context, string, []cart.LineItem) error
}, items []cart.LineItem) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.SaveCart(ctx, "sess-1", items))
	got, err := store.LoadCart(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got, len(items))
	for i := range items {
		require.Equal(t, items[i].Quantity, got[i].Quantity)
		require.Equal(t, items[i].Product.ID, got[i].Product.ID)
		require.Equal(t, items[i].Product.Title, got[i].Product.Title)
		require.True(t, items[i].Product.Price.Equal(got[i].Product.Price),
			"price mismatch: %s vs %s", items[i].Product.Price, got[i].Product.Price)
		require.Equal(t, items[i].Product.Rating, got[i].Product.Rating)
	}
}

func TestMemoryCartRoundTrip(t *testing.T) {
	t.Parallel()

	cases := map[string][]cart.LineItem{
		"empty":    {},
		"single":   {lineItem("1", "10", 1)},
		"multiple": {lineItem("1", "109.95", 2), lineItem("2", "22.3", 1), lineItem("3", "0.01", 7)},
	}

	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			assertRoundTrip(t, NewMemory(), items)
		})
	}
}

func TestMemoryLoadWithoutSaveIsEmpty(t *testing.T) {
	t.Parallel()

	got, err := NewMemory().LoadCart(context.Background(), "fresh")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemoryClearCartRemovesValue(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()
	require.NoError(t, store.SaveCart(ctx, "sess-1", []cart.LineItem{lineItem("1", "10", 1)}))
	require.NoError(t, store.ClearCart(ctx, "sess-1"))

	got, err := store.LoadCart(ctx, "sess-1")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemoryUserRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	got, err := store.LoadUser(ctx, "sess-1")
	require.NoError(t, err)
	require.Nil(t, got)

	user := users.User{ID: "u-1", Email: "ada@example.com", Name: "Ada"}
	require.NoError(t, store.SaveUser(ctx, "sess-1", user))

	got, err = store.LoadUser(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, user, *got)

	require.NoError(t, store.RemoveUser(ctx, "sess-1"))
	got, err = store.LoadUser(ctx, "sess-1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDisabledStoreIsSilent(t *testing.T) {
	t.Parallel()

	store := NewDisabled()
	ctx := context.Background()

	require.NoError(t, store.SaveCart(ctx, "sess-1", []cart.LineItem{lineItem("1", "10", 1)}))
	got, err := store.LoadCart(ctx, "sess-1")
	require.NoError(t, err)
	require.Empty(t, got, "disabled store must not retain anything")

	user, err := store.LoadUser(ctx, "sess-1")
	require.NoError(t, err)
	require.Nil(t, user)
	require.NoError(t, store.SaveUser(ctx, "sess-1", users.User{ID: "u-1"}))
	require.NoError(t, store.RemoveUser(ctx, "sess-1"))
	require.NoError(t, store.ClearCart(ctx, "sess-1"))
}

// fakeKV implements the cmdable surface over a plain map.
type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeKV) Get(ctx context.Context, key string) *redis.StringCmd {
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestRedisCartRoundTrip(t *testing.T) {
	t.Parallel()

	store := &Redis{kv: newFakeKV(), ttl: time.Hour}
	assertRoundTrip(t, store, []cart.LineItem{lineItem("1", "109.95", 2), lineItem("2", "5", 1)})
}

func TestRedisKeysAreNamespaced(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	store := &Redis{kv: kv, ttl: time.Hour}
	ctx := context.Background()

	require.NoError(t, store.SaveCart(ctx, "abc", []cart.LineItem{lineItem("1", "10", 1)}))
	require.Contains(t, kv.data, "storefront:cart:abc")

	require.NoError(t, store.SaveUser(ctx, "abc", users.User{ID: "u-1"}))
	require.Contains(t, kv.data, "storefront:user:abc")

	require.NoError(t, store.ClearCart(ctx, "abc"))
	require.NotContains(t, kv.data, "storefront:cart:abc")
}

func TestRedisMalformedValueSurfacesError(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	kv.data["storefront:cart:abc"] = "{not json"
	store := &Redis{kv: kv, ttl: time.Hour}

	_, err := store.LoadCart(context.Background(), "abc")
	require.Error(t, err)
}
