// Package images resolves catalog image references to canonical
// Firebase Storage download URLs. Product data still carries image URLs
// from three eras: Shopify CDN links from the original store export,
// legacy storage.googleapis.com paths, and current Firebase download
// URLs. The resolver maps all of them to one public URL scheme and
// falls back to an inline placeholder rather than ever failing.
package images

import (
	"net/url"
	"strings"

	"github.com/rikbanerjee/thecustomhub/internal/domain"
)

// Storage and legacy hosts recognized by the resolver.
const (
	firebaseHost  = "firebasestorage.googleapis.com"
	legacyHost    = "storage.googleapis.com"
	shopifyHost   = "cdn.shopify.com"
	altMediaQuery = "?alt=media"
)

// storagePrefix is the folder all product images live under in the bucket.
const storagePrefix = "images/"

// PlaceholderImage is an inline SVG data URI shown for missing or
// unresolvable images. It renders with zero network access.
const PlaceholderImage = `data:image/svg+xml,%3Csvg xmlns="http://www.w3.org/2000/svg" width="400" height="400"%3E%3Crect fill="%23f3f4f6" width="400" height="400"/%3E%3Ctext fill="%239ca3af" font-family="sans-serif" font-size="18" dy="10.5" font-weight="bold" x="50%25" y="50%25" text-anchor="middle"%3ENo Image%3C/text%3E%3C/svg%3E`

// Resolver converts image references to canonical Firebase Storage
// download URLs for a single bucket. All methods are pure and safe for
// concurrent use.
type Resolver struct {
	bucket  string
	baseURL string
}

// NewResolver creates a resolver for the given storage bucket.
func NewResolver(bucket string) *Resolver {
	return &Resolver{
		bucket:  bucket,
		baseURL: "https://" + firebaseHost + "/v0/b/" + bucket + "/o/",
	}
}

var _ domain.ImageResolver = (*Resolver)(nil)

// Resolve maps any image reference to one canonical displayable URL.
// Canonical URLs pass through unchanged, so Resolve(Resolve(x)) ==
// Resolve(x) for all x. Unrecognized absolute URLs (data URIs, external
// hosts) also pass through; bare filenames are rebuilt into canonical
// form; empty input yields the placeholder.
func (r *Resolver) Resolve(rawURL string) string {
	if rawURL == "" {
		return PlaceholderImage
	}

	// Already in canonical download form.
	if strings.Contains(rawURL, firebaseHost) && strings.Contains(rawURL, altMediaQuery) {
		return rawURL
	}

	if strings.Contains(rawURL, legacyHost) || strings.Contains(rawURL, firebaseHost) {
		return r.convertStorageURL(rawURL)
	}
	if strings.Contains(rawURL, shopifyHost) {
		return r.convertShopifyURL(rawURL)
	}

	// Other absolute references (placeholders, data URIs, external
	// hosts) are assumed displayable as-is.
	if strings.Contains(rawURL, "://") || strings.HasPrefix(rawURL, "data:") {
		return rawURL
	}

	// Bare filename or relative path straight from the catalog.
	name := strings.TrimLeft(strings.TrimSpace(rawURL), "/")
	name = strings.TrimPrefix(name, storagePrefix)
	return r.ImageURL(name)
}

// ResolveAll resolves every URL in a product images slice.
func (r *Resolver) ResolveAll(urls []string) []string {
	if len(urls) == 0 {
		return []string{}
	}
	resolved := make([]string, len(urls))
	for i, u := range urls {
		resolved[i] = r.Resolve(u)
	}
	return resolved
}

// FirstImage resolves the first image of a product, or returns the
// placeholder when the product has none.
func (r *Resolver) FirstImage(urls []string) string {
	if len(urls) == 0 {
		return PlaceholderImage
	}
	return r.Resolve(urls[0])
}

// Placeholder returns the inline fallback image reference.
func (r *Resolver) Placeholder() string {
	return PlaceholderImage
}

// ImageURL builds the canonical download URL for a bare filename.
// The whole storage path is percent-encoded as one segment, so the
// slash in "images/" becomes %2F.
func (r *Resolver) ImageURL(filename string) string {
	clean := strings.TrimLeft(strings.TrimSpace(filename), "/")
	if clean == "" {
		return PlaceholderImage
	}
	return r.baseURL + url.PathEscape(storagePrefix+clean) + altMediaQuery
}

// ResolveProduct returns a copy of the product with all image
// references (gallery and per-variant) resolved to canonical URLs.
func (r *Resolver) ResolveProduct(p domain.Product) domain.Product {
	p.Images = r.ResolveAll(p.Images)

	if len(p.Variants) > 0 {
		variants := make([]domain.Variant, len(p.Variants))
		copy(variants, p.Variants)
		for i := range variants {
			if variants[i].VariantImg != "" {
				variants[i].VariantImg = r.Resolve(variants[i].VariantImg)
			}
		}
		p.Variants = variants
	}

	return p
}

// convertStorageURL rebuilds a legacy or partially-formed storage URL
// into canonical form by extracting the bare filename.
func (r *Resolver) convertStorageURL(rawURL string) string {
	// Object path layout: .../o/<encoded-path>
	if rest, ok := sliceAfter(rawURL, "/o/"); ok {
		rest = strings.SplitN(rest, "?", 2)[0]
		decoded := pathUnescapeLenient(rest)
		if strings.HasPrefix(decoded, storagePrefix) {
			return r.ImageURL(strings.TrimPrefix(decoded, storagePrefix))
		}
	}

	// Legacy path layout: .../images/<filename>
	if rest, ok := sliceAfter(rawURL, "/images/"); ok {
		rest = strings.SplitN(rest, "?", 2)[0]
		if filename := lastSegment(rest); filename != "" {
			return r.ImageURL(pathUnescapeLenient(filename))
		}
	}

	if filename, ok := scanFilenameSegment(rawURL); ok {
		return r.ImageURL(filename)
	}

	// Unparseable but already a storage URL; leave it alone.
	return rawURL
}

// convertShopifyURL extracts the filename from a Shopify CDN URL
// (.../files/<path>?v=...) and rebuilds it in canonical form.
func (r *Resolver) convertShopifyURL(rawURL string) string {
	if rest, ok := sliceAfter(rawURL, "/files/"); ok {
		rest = strings.SplitN(rest, "?", 2)[0]
		decoded := pathUnescapeLenient(rest)
		if filename := lastSegment(decoded); filename != "" {
			return r.ImageURL(filename)
		}
	}

	if filename, ok := scanFilenameSegment(rawURL); ok {
		return r.ImageURL(filename)
	}

	return PlaceholderImage
}

// sliceAfter returns the substring following the first occurrence of
// marker, and whether the marker was found with anything after it.
func sliceAfter(s, marker string) (string, bool) {
	idx := strings.Index(s, marker)
	if idx < 0 {
		return "", false
	}
	rest := s[idx+len(marker):]
	if rest == "" {
		return "", false
	}
	return rest, true
}

// lastSegment returns the final /-delimited segment of a path.
func lastSegment(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

// scanFilenameSegment walks URL segments from the end and returns the
// first one that looks like a filename: contains a dot and no literal
// question mark (query strings are stripped first).
func scanFilenameSegment(rawURL string) (string, bool) {
	parts := strings.Split(rawURL, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if !strings.Contains(parts[i], ".") || strings.Contains(parts[i], "?") {
			continue
		}
		segment := strings.SplitN(parts[i], "?", 2)[0]
		if segment != "" {
			return pathUnescapeLenient(segment), true
		}
	}
	return "", false
}

// pathUnescapeLenient percent-decodes a path component, returning the
// input unchanged when it is not valid percent-encoding. Decode
// failures must degrade, never propagate.
func pathUnescapeLenient(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
