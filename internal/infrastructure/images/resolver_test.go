package images

import (
	"strings"
	"testing"

	"github.com/rikbanerjee/thecustomhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucket = "thecustomhub-efb8a.firebasestorage.app"

func newTestResolver() *Resolver {
	return NewResolver(testBucket)
}

func TestResolve(t *testing.T) {
	r := newTestResolver()

	t.Run("empty input returns placeholder", func(t *testing.T) {
		assert.Equal(t, PlaceholderImage, r.Resolve(""))
	})

	t.Run("canonical URLs pass through unchanged", func(t *testing.T) {
		canonical := "https://firebasestorage.googleapis.com/v0/b/" + testBucket + "/o/images%2FDussheraArrow.jpg?alt=media"
		assert.Equal(t, canonical, r.Resolve(canonical))
	})

	t.Run("shopify CDN URL converts to canonical form", func(t *testing.T) {
		got := r.Resolve("https://cdn.shopify.com/s/files/1/0690/7209/3284/files/Shirt.jpg?v=1757564112")

		assert.Contains(t, got, "firebasestorage.googleapis.com")
		assert.Contains(t, got, "images%2FShirt.jpg")
		assert.Contains(t, got, "?alt=media")
		assert.Contains(t, got, testBucket)
	})

	t.Run("shopify nested file path keeps only the filename", func(t *testing.T) {
		got := r.Resolve("https://cdn.shopify.com/s/files/1/0690/files/products/2024/Mug.png?v=2")
		assert.Contains(t, got, "images%2FMug.png")
	})

	t.Run("legacy storage URL converts via filename", func(t *testing.T) {
		got := r.Resolve("https://storage.googleapis.com/" + testBucket + "/images/Diya.jpg")
		assert.Equal(t, r.ImageURL("Diya.jpg"), got)
	})

	t.Run("firebase URL missing alt=media is rebuilt", func(t *testing.T) {
		partial := "https://firebasestorage.googleapis.com/v0/b/" + testBucket + "/o/images%2FDiya.jpg"
		got := r.Resolve(partial)

		assert.Contains(t, got, "?alt=media")
		assert.Contains(t, got, "images%2FDiya.jpg")
	})

	t.Run("other absolute URLs pass through", func(t *testing.T) {
		external := "https://example.com/photos/banner.jpg"
		assert.Equal(t, external, r.Resolve(external))

		dataURI := "data:image/png;base64,iVBORw0KGgo="
		assert.Equal(t, dataURI, r.Resolve(dataURI))
	})

	t.Run("placeholder passes through", func(t *testing.T) {
		assert.Equal(t, PlaceholderImage, r.Resolve(PlaceholderImage))
	})

	t.Run("shopify URL without a files path falls back to segment scan", func(t *testing.T) {
		// The host is the last segment containing a dot, so it is
		// treated as the filename. Odd, but a stable canonical URL is
		// better than a broken reference.
		got := r.Resolve("https://cdn.shopify.com/s/")
		assert.Equal(t, r.ImageURL("cdn.shopify.com"), got)
	})

	t.Run("bare filenames are rebuilt into canonical form", func(t *testing.T) {
		got := r.Resolve("diya-set.jpg")
		assert.Equal(t, r.ImageURL("diya-set.jpg"), got)
		assert.True(t, strings.HasPrefix(got, "https://"), "resolved reference must be a URL, got %q", got)
	})

	t.Run("relative storage paths collapse to the filename", func(t *testing.T) {
		assert.Equal(t, r.ImageURL("diya-set.jpg"), r.Resolve("/images/diya-set.jpg"))
		assert.Equal(t, r.ImageURL("diya-set.jpg"), r.Resolve("images/diya-set.jpg"))
	})

	t.Run("encoded filenames are decoded before rebuilding", func(t *testing.T) {
		got := r.Resolve("https://cdn.shopify.com/s/files/1/0690/files/Red%20Mug.jpg?v=3")
		assert.Equal(t, r.ImageURL("Red Mug.jpg"), got)
	})
}

func TestResolveIdempotence(t *testing.T) {
	r := newTestResolver()

	inputs := []string{
		"",
		"https://cdn.shopify.com/s/files/1/0690/7209/3284/files/Shirt.jpg?v=1757564112",
		"https://storage.googleapis.com/" + testBucket + "/images/Diya.jpg",
		"https://firebasestorage.googleapis.com/v0/b/" + testBucket + "/o/images%2FDiya.jpg?alt=media",
		"https://example.com/banner.png",
		"data:image/png;base64,iVBORw0KGgo=",
		"not a url at all",
		"diya-set.jpg",
		"images/diya-set.jpg",
		"https://cdn.shopify.com/s/",
	}

	for _, input := range inputs {
		once := r.Resolve(input)
		twice := r.Resolve(once)
		assert.Equal(t, once, twice, "resolve is not idempotent for %q", input)
	}
}

func TestImageURL(t *testing.T) {
	r := newTestResolver()

	t.Run("builds canonical download URL", func(t *testing.T) {
		got := r.ImageURL("DussheraArrow.jpg")
		want := "https://firebasestorage.googleapis.com/v0/b/" + testBucket + "/o/images%2FDussheraArrow.jpg?alt=media"
		assert.Equal(t, want, got)
	})

	t.Run("strips leading slashes and whitespace", func(t *testing.T) {
		assert.Equal(t, r.ImageURL("a.jpg"), r.ImageURL("  //a.jpg"))
	})

	t.Run("empty filename returns placeholder", func(t *testing.T) {
		assert.Equal(t, PlaceholderImage, r.ImageURL(""))
		assert.Equal(t, PlaceholderImage, r.ImageURL("  ///  "))
	})

	t.Run("percent-encodes the whole path as one segment", func(t *testing.T) {
		got := r.ImageURL("Red Mug.jpg")
		assert.Contains(t, got, "images%2FRed%20Mug.jpg")
		assert.False(t, strings.Contains(got, "images/Red"))
	})
}

func TestResolveAllAndFirstImage(t *testing.T) {
	r := newTestResolver()

	t.Run("resolves every entry", func(t *testing.T) {
		got := r.ResolveAll([]string{
			"https://cdn.shopify.com/s/files/1/0690/files/A.jpg",
			"",
		})
		require.Len(t, got, 2)
		assert.Contains(t, got[0], "images%2FA.jpg")
		assert.Equal(t, PlaceholderImage, got[1])
	})

	t.Run("empty slice resolves to empty slice", func(t *testing.T) {
		assert.Empty(t, r.ResolveAll(nil))
	})

	t.Run("first image falls back to placeholder", func(t *testing.T) {
		assert.Equal(t, PlaceholderImage, r.FirstImage(nil))
		assert.Contains(t, r.FirstImage([]string{"https://cdn.shopify.com/files/B.jpg"}), "images%2FB.jpg")
	})
}

func TestResolveProduct(t *testing.T) {
	r := newTestResolver()

	product := domain.Product{
		ID:     "a",
		Images: []string{"https://cdn.shopify.com/s/files/1/0690/files/A.jpg"},
		Variants: []domain.Variant{
			{Option1: "Small", VariantImg: "https://cdn.shopify.com/s/files/1/0690/files/A-small.jpg"},
			{Option1: "Large"},
		},
	}

	got := r.ResolveProduct(product)

	require.Len(t, got.Images, 1)
	assert.Contains(t, got.Images[0], "images%2FA.jpg")

	require.Len(t, got.Variants, 2)
	assert.Contains(t, got.Variants[0].VariantImg, "images%2FA-small.jpg")
	assert.Empty(t, got.Variants[1].VariantImg)

	// The input product must not be mutated.
	assert.Contains(t, product.Images[0], "cdn.shopify.com")
	assert.Contains(t, product.Variants[0].VariantImg, "cdn.shopify.com")
}
