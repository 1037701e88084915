package allied

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mercado/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClient struct {
	products []Product
	err      error
	calls    int
}

func (c *stubClient) FetchProducts(_ context.Context) ([]Product, error) {
	c.calls++
	return c.products, c.err
}

type memoryCache struct {
	values map[string][]Product
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]Product{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	*dest.(*[]Product) = v
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.values[key] = value.([]Product)
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func testFeed() []Product {
	return []Product{
		{ID: "1", Name: "Aguacate Hass", Category: "Frutas", Price: "4500", Stock: 12},
		{ID: "2", Name: "Mora de Castilla", Category: "Frutas", Price: "6000", Stock: 7},
		{ID: "3", Name: "Queso Campesino", Category: "Lacteos", Price: "12000", Stock: 3},
	}
}

func TestService_Products(t *testing.T) {
	t.Run("fetches from the allied store and caches the feed", func(t *testing.T) {
		client := &stubClient{products: testFeed()}
		service := NewService(client, newMemoryCache(), zap.NewNop())

		result := service.Products(context.Background())
		assert.True(t, result.Success)
		assert.Equal(t, "api", result.Source)
		assert.Equal(t, 3, result.Count)
		assert.Equal(t, testFeed(), result.Data)

		// the second read never touches the upstream
		result = service.Products(context.Background())
		assert.Equal(t, "cache", result.Source)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("reports upstream failures in-band", func(t *testing.T) {
		client := &stubClient{err: assert.AnError}
		service := NewService(client, newMemoryCache(), zap.NewNop())

		result := service.Products(context.Background())
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
		assert.Empty(t, result.Data)
	})

	t.Run("an empty feed is still a success", func(t *testing.T) {
		client := &stubClient{products: []Product{}}
		service := NewService(client, newMemoryCache(), zap.NewNop())

		result := service.Products(context.Background())
		assert.True(t, result.Success)
		assert.Equal(t, 0, result.Count)
	})
}

func TestService_Search(t *testing.T) {
	newTestService := func() *Service {
		return NewService(&stubClient{products: testFeed()}, newMemoryCache(), zap.NewNop())
	}

	t.Run("filters by name case-insensitively", func(t *testing.T) {
		result := newTestService().Search(context.Background(), "mora", "")
		require.True(t, result.Success)
		require.Equal(t, 1, result.Count)
		assert.Equal(t, "Mora de Castilla", result.Data[0].Name)
	})

	t.Run("filters by category", func(t *testing.T) {
		result := newTestService().Search(context.Background(), "", "frutas")
		require.Equal(t, 2, result.Count)
	})

	t.Run("category todas means no filter", func(t *testing.T) {
		result := newTestService().Search(context.Background(), "", "todas")
		assert.Equal(t, 3, result.Count)
	})

	t.Run("combines name and category filters", func(t *testing.T) {
		result := newTestService().Search(context.Background(), "queso", "Frutas")
		assert.Equal(t, 0, result.Count)
		assert.True(t, result.Success)
	})

	t.Run("propagates upstream failure", func(t *testing.T) {
		service := NewService(&stubClient{err: assert.AnError}, newMemoryCache(), zap.NewNop())
		result := service.Search(context.Background(), "mora", "")
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
	})
}

func TestService_Categories(t *testing.T) {
	t.Run("returns sorted distinct categories", func(t *testing.T) {
		service := NewService(&stubClient{products: testFeed()}, newMemoryCache(), zap.NewNop())

		result := service.Categories(context.Background())
		require.True(t, result.Success)
		assert.Equal(t, []string{"Frutas", "Lacteos"}, result.Data)
		assert.Equal(t, 2, result.Count)
	})

	t.Run("skips products without category", func(t *testing.T) {
		feed := []Product{{ID: "1", Name: "Suelto"}, {ID: "2", Name: "Panela", Category: "Dulces"}}
		service := NewService(&stubClient{products: feed}, newMemoryCache(), zap.NewNop())

		result := service.Categories(context.Background())
		assert.Equal(t, []string{"Dulces"}, result.Data)
	})

	t.Run("empty on upstream failure", func(t *testing.T) {
		service := NewService(&stubClient{err: assert.AnError}, newMemoryCache(), zap.NewNop())

		result := service.Categories(context.Background())
		assert.False(t, result.Success)
		assert.Empty(t, result.Data)
	})
}

func TestService_ClearCache(t *testing.T) {
	t.Run("refetches the feed and warms the cache", func(t *testing.T) {
		client := &stubClient{products: testFeed()}
		service := NewService(client, newMemoryCache(), zap.NewNop())

		service.Products(context.Background())
		require.NoError(t, service.ClearCache(context.Background()))
		assert.Equal(t, 2, client.calls)

		// the warmed cache serves the next read
		result := service.Products(context.Background())
		assert.Equal(t, "cache", result.Source)
		assert.Equal(t, 2, client.calls)
	})

	t.Run("surfaces a partner outage instead of degrading in-band", func(t *testing.T) {
		client := &stubClient{err: fmt.Errorf("allied: %w: connection refused", shared.ErrUpstreamUnavailable)}
		service := NewService(client, newMemoryCache(), zap.NewNop())

		err := service.ClearCache(context.Background())
		assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
	})
}
