package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rikbanerjee/thecustomhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arrayCatalog = `[
	{"id": "a", "title": "Red Mug", "type": "Home Decor",
	 "variants": [{"price": "12.00", "option1": "Small", "inventoryQty": 3}]},
	{"id": "b", "title": "Festival T-Shirt", "type": "Apparel", "price": 24.99}
]`

const objectCatalog = `{
	"products": [
		{"id": "a", "title": "Red Mug", "price": 12,
		 "description": {"short": "A mug.", "long": "A very nice mug."}}
	]
}`

func TestParseCatalog(t *testing.T) {
	t.Run("accepts bare array shape", func(t *testing.T) {
		products, err := ParseCatalog([]byte(arrayCatalog))
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "a", products[0].ID)
		// Quoted Shopify prices parse as numbers.
		assert.True(t, products[0].Variants[0].Price.Valid())
		assert.Equal(t, 12.0, products[0].Variants[0].Price.Value())
	})

	t.Run("accepts object shape with products key", func(t *testing.T) {
		products, err := ParseCatalog([]byte(objectCatalog))
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "A mug.", products[0].Description.Short)
		assert.True(t, products[0].Description.Structured())
	})

	t.Run("object without products key yields empty catalog", func(t *testing.T) {
		products, err := ParseCatalog([]byte(`{"categories": []}`))
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("rejects empty and malformed documents", func(t *testing.T) {
		_, err := ParseCatalog([]byte(""))
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)

		_, err = ParseCatalog([]byte("{not json"))
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)

		_, err = ParseCatalog([]byte("[{]"))
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("unparseable prices degrade to invalid, not errors", func(t *testing.T) {
		products, err := ParseCatalog([]byte(`[{"id": "x", "title": "X", "price": "free"}]`))
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.False(t, products[0].Price.Valid())
		assert.Equal(t, 0.0, products[0].Price.Value())
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("loads catalog from a local file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.json")
		require.NoError(t, os.WriteFile(path, []byte(arrayCatalog), 0o644))

		loader := NewLoader(path, 5*time.Second)
		products, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("missing file reports catalog unavailable", func(t *testing.T) {
		loader := NewLoader("/does/not/exist.json", 5*time.Second)
		_, err := loader.Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})
}

func TestLoadFromHTTP(t *testing.T) {
	t.Run("fetches catalog over HTTP", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "TheCustomHub/1.0", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(objectCatalog))
		}))
		defer server.Close()

		loader := NewLoader(server.URL, 5*time.Second)
		products, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("retries transient server errors", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(arrayCatalog))
		}))
		defer server.Close()

		loader := NewLoader(server.URL, 5*time.Second)
		products, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.Len(t, products, 2)
	})

	t.Run("gives up after repeated failures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		loader := NewLoader(server.URL, 5*time.Second)
		_, err := loader.Load(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		loader := NewLoader("https://example.invalid/products.json", 5*time.Second)
		_, err := loader.Load(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})
}
