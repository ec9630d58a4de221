package domain

import (
	"context"
	"time"
)

// CatalogSource loads the raw product list. Implementations read a
// bundled JSON file or fetch it over HTTP; either way the catalog is
// loaded once at startup and treated as read-only afterwards.
type CatalogSource interface {
	Load(ctx context.Context) ([]RawProduct, error)
}

// ImageResolver maps any image reference from the catalog to one
// canonical displayable URL. Implementations must be idempotent and
// must never return an unusable reference.
type ImageResolver interface {
	Resolve(url string) string
	ResolveAll(urls []string) []string
	Placeholder() string
}

// CacheRepository defines the interface for response memoization.
// The query engine itself recomputes on every call; only the delivery
// layer caches.
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
