// Package catalog loads the static product catalog the storefront is
// built from. The catalog is a single JSON document, read once at
// startup from a bundled file or fetched from a public URL.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rikbanerjee/thecustomhub/internal/domain"
	"golang.org/x/time/rate"
)

// Loader reads and parses the catalog document.
type Loader struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	source      string
}

// NewLoader creates a loader for the given source: a local file path or
// an http(s) URL.
func NewLoader(source string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// The catalog host is a static bucket; one request per second with a
	// small burst is plenty for startup plus manual reloads.
	limiter := rate.NewLimiter(rate.Limit(1), 3)

	return &Loader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: limiter,
		source:      source,
	}
}

var _ domain.CatalogSource = (*Loader)(nil)

// Load reads the catalog from its source and returns the raw product
// list. Both accepted document shapes (bare array, {"products": [...]})
// are coerced here so the rest of the engine only ever sees one list
// type.
func (l *Loader) Load(ctx context.Context) ([]domain.RawProduct, error) {
	var (
		data []byte
		err  error
	)

	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		data, err = l.fetch(ctx)
	} else {
		data, err = os.ReadFile(l.source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	products, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}

	log.Printf("[CATALOG] Loaded %d products from %s", len(products), l.source)
	return products, nil
}

// fetch retrieves the catalog document over HTTP, retrying transient
// failures up to 3 times with backoff.
func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= 3; attempt++ {
		if err := l.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "TheCustomHub/1.0")
		req.Header.Set("Accept", "application/json")

		resp, err := l.httpClient.Do(req)
		if err != nil {
			log.Printf("[CATALOG] Fetch error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("[CATALOG] Fetch failed (attempt %d) - status %d", attempt, resp.StatusCode)
			lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}
		if readErr != nil {
			log.Printf("[CATALOG] Read error (attempt %d): %v", attempt, readErr)
			lastErr = readErr
			continue
		}

		return body, nil
	}

	return nil, lastErr
}

// ParseCatalog decodes a catalog document in either accepted shape.
func ParseCatalog(data []byte) ([]domain.RawProduct, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrCatalogUnavailable)
	}

	// Shopify export shape: a bare array of products.
	if data[0] == '[' {
		var products []domain.RawProduct
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}
		return products, nil
	}

	// Sample-data shape: an object with a products array.
	var doc struct {
		Products []domain.RawProduct `json:"products"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	if doc.Products == nil {
		return []domain.RawProduct{}, nil
	}
	return doc.Products, nil
}
