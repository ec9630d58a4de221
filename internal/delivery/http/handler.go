package http

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rikbanerjee/thecustomhub/internal/domain"
	"github.com/rikbanerjee/thecustomhub/internal/infrastructure/images"
	"github.com/rikbanerjee/thecustomhub/internal/usecase"
)

const serviceVersion = "1.0.0"

// Cache keys for memoized derived responses.
const (
	cacheKeyCategories = "categories"
	cacheKeyStats      = "stats"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog  *usecase.CatalogService
	images   *images.Resolver
	cache    domain.CacheRepository
	cacheTTL time.Duration
}

// NewHandler creates a new HTTP handler. The cache is optional; when
// nil, category and stats responses are recomputed on every request.
func NewHandler(catalog *usecase.CatalogService, resolver *images.Resolver, cache domain.CacheRepository, cacheTTL time.Duration) *Handler {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Handler{
		catalog:  catalog,
		images:   resolver,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "thecustomhub-backend",
		"version": serviceVersion,
	})
}

// ListProducts handles GET /products with optional filter and sort
// query parameters. Without parameters it returns the full catalog,
// normalized, in catalog order.
func (h *Handler) ListProducts(c *gin.Context) {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products := h.catalog.FilterProducts(criteria)
	products = h.catalog.SortProducts(products, sortKey(c))

	h.respondProducts(c, products)
}

// GetProduct handles GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.ProductByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, h.images.ResolveProduct(*product))
}

// RelatedProducts handles GET /products/:id/related?count=4
func (h *Handler) RelatedProducts(c *gin.Context) {
	count := intQuery(c, "count", 4)
	h.respondProducts(c, h.catalog.RelatedProducts(c.Param("id"), count))
}

// FeaturedProducts handles GET /products/featured?count=6
func (h *Handler) FeaturedProducts(c *gin.Context) {
	count := intQuery(c, "count", 6)
	h.respondProducts(c, h.catalog.FeaturedProducts(count))
}

// SearchProducts handles GET /search?q=...
// A missing q parameter is a client error; a present-but-blank query
// matches nothing, mirroring the engine contract.
func (h *Handler) SearchProducts(c *gin.Context) {
	query, ok := c.GetQuery("q")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	results := h.catalog.SearchProducts(query)
	results = h.catalog.SortProducts(results, sortKey(c))

	h.respondProducts(c, results)
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	if cached, err := h.cacheGet(c.Request.Context(), cacheKeyCategories); err == nil {
		if categories, ok := cached.([]domain.Category); ok {
			c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
			return
		}
	}

	categories := h.catalog.AllCategories()
	h.cacheSet(c.Request.Context(), cacheKeyCategories, categories)

	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

// GetCategory handles GET /categories/:id
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.catalog.CategoryByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// CategoryProducts handles GET /categories/:id/products
func (h *Handler) CategoryProducts(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.catalog.CategoryByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	products := h.catalog.ProductsByCategory(id)
	products = h.catalog.SortProducts(products, sortKey(c))

	h.respondProducts(c, products)
}

// ListTags handles GET /tags
func (h *Handler) ListTags(c *gin.Context) {
	tags := h.catalog.AllTags()
	c.JSON(http.StatusOK, gin.H{"tags": tags, "count": len(tags)})
}

// ListTypes handles GET /types
func (h *Handler) ListTypes(c *gin.Context) {
	types := h.catalog.AllTypes()
	c.JSON(http.StatusOK, gin.H{"types": types, "count": len(types)})
}

// ListSubcategories handles GET /subcategories
func (h *Handler) ListSubcategories(c *gin.Context) {
	subs := h.catalog.AllSubcategories()
	c.JSON(http.StatusOK, gin.H{"subcategories": subs, "count": len(subs)})
}

// GetStats handles GET /stats
func (h *Handler) GetStats(c *gin.Context) {
	if cached, err := h.cacheGet(c.Request.Context(), cacheKeyStats); err == nil {
		if stats, ok := cached.(domain.ProductStats); ok {
			c.JSON(http.StatusOK, stats)
			return
		}
	}

	stats := h.catalog.Stats()
	h.cacheSet(c.Request.Context(), cacheKeyStats, stats)

	c.JSON(http.StatusOK, stats)
}

// SubmitContact handles POST /contact. Orders and inquiries are handled
// manually over email, so the backend only records the submission.
func (h *Handler) SubmitContact(c *gin.Context) {
	var msg domain.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact submission: " + err.Error()})
		return
	}

	log.Printf("[CONTACT] From %q <%s> subject=%q: %s", msg.Name, msg.Email, msg.Subject, msg.Message)

	c.JSON(http.StatusAccepted, gin.H{"status": "received"})
}

// respondProducts resolves image URLs and writes the standard list
// envelope.
func (h *Handler) respondProducts(c *gin.Context, products []domain.Product) {
	resolved := make([]domain.Product, len(products))
	for i, p := range products {
		resolved[i] = h.images.ResolveProduct(p)
	}
	c.JSON(http.StatusOK, gin.H{"products": resolved, "count": len(resolved)})
}

func (h *Handler) cacheGet(ctx context.Context, key string) (interface{}, error) {
	if h.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	return h.cache.Get(ctx, key)
}

func (h *Handler) cacheSet(ctx context.Context, key string, value interface{}) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(ctx, key, value, h.cacheTTL); err != nil {
		log.Printf("[CACHE] Failed to store %q: %v", key, err)
	}
}

// sortKey reads the sort query parameter; absent means relevance, i.e.
// leave the order as produced.
func sortKey(c *gin.Context) domain.SortKey {
	return domain.SortKey(c.DefaultQuery("sort", string(domain.SortRelevance)))
}

// intQuery parses an integer query parameter, falling back to def for
// absent or malformed values.
func intQuery(c *gin.Context, name string, def int) int {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// parseFilterCriteria builds FilterCriteria from query parameters.
// Malformed numeric or boolean values are client errors; the engine
// itself never rejects input.
func parseFilterCriteria(c *gin.Context) (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
	}

	if raw, ok := c.GetQuery("inStock"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return criteria, domain.ErrInvalidQuery
		}
		criteria.InStock = &v
	}

	if raw, ok := c.GetQuery("minPrice"); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, domain.ErrInvalidQuery
		}
		criteria.MinPrice = &v
	}

	if raw, ok := c.GetQuery("maxPrice"); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, domain.ErrInvalidQuery
		}
		criteria.MaxPrice = &v
	}

	if raw, ok := c.GetQuery("tags"); ok {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				criteria.Tags = append(criteria.Tags, tag)
			}
		}
	}

	return criteria, nil
}
