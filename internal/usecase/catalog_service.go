package usecase

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/rikbanerjee/thecustomhub/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	nonSlugRegex    = regexp.MustCompile(`[^a-z0-9-]`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
)

// shortDescriptionLimit is the maximum length of the short form of a
// description derived from a raw HTML/plain string.
const shortDescriptionLimit = 150

// defaultCategoryName is used when a product carries no type label.
const defaultCategoryName = "Other"

// CatalogService is the single source of truth for turning raw,
// inconsistently-shaped product records into the canonical model and for
// answering all catalog read queries. The catalog is injected once and
// never mutated; every query recomputes normalization from scratch,
// which is fine for catalogs of hundreds of records.
type CatalogService struct {
	products []domain.RawProduct
	images   domain.ImageResolver
}

// NewCatalogService creates a catalog service over an explicit product
// list. The resolver is used for category thumbnail images.
func NewCatalogService(products []domain.RawProduct, images domain.ImageResolver) *CatalogService {
	return &CatalogService{
		products: products,
		images:   images,
	}
}

// Slugify derives a category id from a human-readable label: lowercase,
// whitespace runs collapsed to single hyphens, everything outside
// [a-z0-9-] stripped. Every code path that needs a category identity
// goes through this one function.
func Slugify(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = whitespaceRegex.ReplaceAllString(s, "-")
	return nonSlugRegex.ReplaceAllString(s, "")
}

// AllProducts returns the raw product list as loaded. Callers must
// treat it as read-only.
func (s *CatalogService) AllProducts() []domain.RawProduct {
	return s.products
}

// Normalize resolves a raw product into the canonical shape.
func (s *CatalogService) Normalize(raw domain.RawProduct) domain.Product {
	categoryName := raw.Type
	if strings.TrimSpace(categoryName) == "" {
		categoryName = defaultCategoryName
	}

	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}
	images := raw.Images
	if images == nil {
		images = []string{}
	}
	variants := raw.Variants
	if variants == nil {
		variants = []domain.Variant{}
	}

	return domain.Product{
		ID:             raw.ID,
		Title:          raw.Title,
		Description:    resolveDescription(raw.Description),
		Price:          resolvePrice(raw),
		Images:         images,
		Category:       Slugify(categoryName),
		CategoryName:   categoryName,
		FullCategory:   raw.Category,
		Type:           raw.Type,
		Subcategory:    raw.Subcategory,
		Tags:           tags,
		Vendor:         raw.Vendor,
		InStock:        resolveStock(raw),
		Specifications: extractSpecifications(raw),
		ExternalLinks:  extractExternalLinks(raw),
		Variants:       variants,
	}
}

// resolvePrice resolves the canonical price: minimum numeric variant
// price when variants exist, else the direct price, else 0. NaN entries
// are skipped rather than propagated.
func resolvePrice(raw domain.RawProduct) float64 {
	if len(raw.Variants) > 0 {
		min := math.NaN()
		for _, v := range raw.Variants {
			if !v.Price.Valid() {
				continue
			}
			p := v.Price.Value()
			if math.IsNaN(min) || p < min {
				min = p
			}
		}
		if math.IsNaN(min) {
			return 0
		}
		return min
	}

	if raw.Price.Valid() {
		return raw.Price.Value()
	}
	return 0
}

// resolveStock resolves the stock flag: direct flag when present, else
// "any variant has positive inventory", else in stock by default.
func resolveStock(raw domain.RawProduct) bool {
	if raw.InStock != nil {
		return *raw.InStock
	}
	if len(raw.Variants) > 0 {
		for _, v := range raw.Variants {
			if v.InventoryQty > 0 {
				return true
			}
		}
		return false
	}
	return true
}

// resolveDescription resolves either description shape into {short, long}.
// String descriptions are stripped of HTML tags; the short form is the
// first 150 characters plus an ellipsis.
func resolveDescription(d domain.FlexDescription) domain.Description {
	if d.Structured() {
		return domain.Description{Short: d.Short, Long: d.Long}
	}

	plain := htmlTagRegex.ReplaceAllString(d.Text, " ")
	plain = strings.TrimSpace(whitespaceRegex.ReplaceAllString(plain, " "))

	short := plain
	if runes := []rune(plain); len(runes) > shortDescriptionLimit {
		short = string(runes[:shortDescriptionLimit]) + "..."
	}

	return domain.Description{Short: short, Long: plain}
}

// extractSpecifications derives a specification table from variant
// option sets, vendor and type. Pre-supplied specifications win. Option
// values keep the insertion order of their first occurrence.
func extractSpecifications(raw domain.RawProduct) map[string]string {
	if raw.Specifications != nil {
		return raw.Specifications
	}

	specs := make(map[string]string)

	if len(raw.Variants) > 0 {
		var sizes, colors []string
		seenSizes := make(map[string]bool)
		seenColors := make(map[string]bool)

		for _, v := range raw.Variants {
			if v.Option1 != "" && !seenSizes[v.Option1] {
				seenSizes[v.Option1] = true
				sizes = append(sizes, v.Option1)
			}
			if v.Option2 != "" && !seenColors[v.Option2] {
				seenColors[v.Option2] = true
				colors = append(colors, v.Option2)
			}
		}

		if len(sizes) > 0 {
			specs["Sizes Available"] = strings.Join(sizes, ", ")
		}
		if len(colors) > 0 {
			specs["Colors"] = strings.Join(colors, ", ")
		}
	}

	if raw.Vendor != "" {
		specs["Brand"] = raw.Vendor
	}
	if raw.Type != "" {
		specs["Product Type"] = raw.Type
	}

	return specs
}

// extractExternalLinks returns pre-supplied marketplace links, or empty
// slots for the marketplaces the store lists on.
func extractExternalLinks(raw domain.RawProduct) map[string]string {
	if raw.ExternalLinks != nil {
		return raw.ExternalLinks
	}
	return map[string]string{
		"amazon":  "",
		"walmart": "",
		"etsy":    "",
	}
}

// AllCategories groups products by slugified type and returns the
// derived categories sorted by product count, descending. A category
// only exists while at least one product carries its type.
func (s *CatalogService) AllCategories() []domain.Category {
	var categories []domain.Category
	index := make(map[string]int)

	for _, p := range s.products {
		typ := p.Type
		if strings.TrimSpace(typ) == "" {
			typ = defaultCategoryName
		}
		id := Slugify(typ)

		i, ok := index[id]
		if !ok {
			image := ""
			if len(p.Images) > 0 && p.Images[0] != "" {
				image = s.images.Resolve(p.Images[0])
			}
			categories = append(categories, domain.Category{
				ID:          id,
				Name:        typ,
				Description: fmt.Sprintf("Browse our collection of %s", strings.ToLower(typ)),
				Image:       image,
			})
			i = len(categories) - 1
			index[id] = i
		}

		categories[i].ProductCount++

		if categories[i].Image == "" && len(p.Images) > 0 && p.Images[0] != "" {
			categories[i].Image = s.images.Resolve(p.Images[0])
		}
	}

	sort.SliceStable(categories, func(a, b int) bool {
		return categories[a].ProductCount > categories[b].ProductCount
	})

	return categories
}

// CategoryByID looks up a derived category by its slug.
func (s *CatalogService) CategoryByID(id string) (*domain.Category, error) {
	if id == "" {
		return nil, domain.ErrCategoryNotFound
	}
	for _, c := range s.AllCategories() {
		if c.ID == id {
			cat := c
			return &cat, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// ProductByID looks up a product by id and returns it normalized.
func (s *CatalogService) ProductByID(id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.ErrProductNotFound
	}
	for _, p := range s.products {
		if p.ID == id {
			normalized := s.Normalize(p)
			return &normalized, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// ProductsByCategory returns the normalized products whose slugified
// type matches the given category slug.
func (s *CatalogService) ProductsByCategory(category string) []domain.Product {
	if category == "" {
		return []domain.Product{}
	}
	id := strings.ToLower(category)

	results := []domain.Product{}
	for _, p := range s.products {
		typ := p.Type
		if strings.TrimSpace(typ) == "" {
			typ = defaultCategoryName
		}
		if Slugify(typ) == id {
			results = append(results, s.Normalize(p))
		}
	}
	return results
}

// ProductsBySubcategory returns normalized products in the given
// subcategory (case-insensitive exact match).
func (s *CatalogService) ProductsBySubcategory(subcategory string) []domain.Product {
	if subcategory == "" {
		return []domain.Product{}
	}
	want := strings.ToLower(subcategory)

	results := []domain.Product{}
	for _, p := range s.products {
		if strings.ToLower(p.Subcategory) == want {
			results = append(results, s.Normalize(p))
		}
	}
	return results
}

// ProductsByTag returns normalized products carrying the given tag
// (case-insensitive exact match).
func (s *CatalogService) ProductsByTag(tag string) []domain.Product {
	if tag == "" {
		return []domain.Product{}
	}
	want := strings.ToLower(tag)

	results := []domain.Product{}
	for _, p := range s.products {
		for _, t := range p.Tags {
			if strings.ToLower(t) == want {
				results = append(results, s.Normalize(p))
				break
			}
		}
	}
	return results
}

// InStockProducts returns the normalized products currently in stock.
func (s *CatalogService) InStockProducts() []domain.Product {
	results := []domain.Product{}
	for _, p := range s.products {
		if resolveStock(p) {
			results = append(results, s.Normalize(p))
		}
	}
	return results
}

// OutOfStockProducts returns the normalized products currently out of stock.
func (s *CatalogService) OutOfStockProducts() []domain.Product {
	results := []domain.Product{}
	for _, p := range s.products {
		if !resolveStock(p) {
			results = append(results, s.Normalize(p))
		}
	}
	return results
}

// ProductsByPriceRange returns normalized products priced within
// [minPrice, maxPrice], inclusive.
func (s *CatalogService) ProductsByPriceRange(minPrice, maxPrice float64) []domain.Product {
	if minPrice < 0 || maxPrice < minPrice {
		return []domain.Product{}
	}

	results := []domain.Product{}
	for _, p := range s.products {
		price := resolvePrice(p)
		if price >= minPrice && price <= maxPrice {
			results = append(results, s.Normalize(p))
		}
	}
	return results
}

// FeaturedProducts returns the first count in-stock products.
func (s *CatalogService) FeaturedProducts(count int) []domain.Product {
	if count <= 0 {
		count = 6
	}
	products := s.InStockProducts()
	if len(products) > count {
		products = products[:count]
	}
	return products
}

// FilterProducts applies the criteria conjunctively and returns the
// matching products, normalized, in catalog order.
func (s *CatalogService) FilterProducts(criteria domain.FilterCriteria) []domain.Product {
	results := []domain.Product{}

	for _, p := range s.products {
		if criteria.Category != "" {
			typ := p.Type
			if strings.TrimSpace(typ) == "" {
				typ = defaultCategoryName
			}
			if Slugify(typ) != strings.ToLower(criteria.Category) {
				continue
			}
		}

		if criteria.Subcategory != "" &&
			!strings.EqualFold(p.Subcategory, criteria.Subcategory) {
			continue
		}

		if criteria.InStock != nil && resolveStock(p) != *criteria.InStock {
			continue
		}

		price := resolvePrice(p)
		if criteria.MinPrice != nil && price < *criteria.MinPrice {
			continue
		}
		if criteria.MaxPrice != nil && price > *criteria.MaxPrice {
			continue
		}

		if len(criteria.Tags) > 0 && !hasAnyTag(p.Tags, criteria.Tags) {
			continue
		}

		results = append(results, s.Normalize(p))
	}

	return results
}

// hasAnyTag reports whether any wanted tag is present on the product
// (case-insensitive exact match).
func hasAnyTag(productTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range productTags {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}

// SortProducts returns a sorted copy of the list. Unknown keys and
// "relevance" leave the order unchanged (search results arrive already
// ranked). Name comparison is case-insensitive.
func (s *CatalogService) SortProducts(products []domain.Product, key domain.SortKey) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	switch key {
	case domain.SortPriceAsc:
		sort.SliceStable(sorted, func(a, b int) bool {
			return sorted[a].Price < sorted[b].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(sorted, func(a, b int) bool {
			return sorted[a].Price > sorted[b].Price
		})
	case domain.SortNameAsc:
		sort.SliceStable(sorted, func(a, b int) bool {
			return compareNames(sorted[a].Title, sorted[b].Title) < 0
		})
	case domain.SortNameDesc:
		sort.SliceStable(sorted, func(a, b int) bool {
			return compareNames(sorted[a].Title, sorted[b].Title) > 0
		})
	}

	return sorted
}

// compareNames compares product titles case-insensitively, falling back
// to a case-sensitive compare for deterministic ordering of titles that
// differ only in case.
func compareNames(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// AllTags returns the distinct tags across the catalog, sorted
// alphabetically.
func (s *CatalogService) AllTags() []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, p := range s.products {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// AllTypes returns the distinct raw product types, sorted alphabetically.
func (s *CatalogService) AllTypes() []string {
	seen := make(map[string]bool)
	types := []string{}
	for _, p := range s.products {
		if p.Type != "" && !seen[p.Type] {
			seen[p.Type] = true
			types = append(types, p.Type)
		}
	}
	sort.Strings(types)
	return types
}

// AllSubcategories returns the distinct subcategories, sorted
// alphabetically.
func (s *CatalogService) AllSubcategories() []string {
	seen := make(map[string]bool)
	subs := []string{}
	for _, p := range s.products {
		if p.Subcategory != "" && !seen[p.Subcategory] {
			seen[p.Subcategory] = true
			subs = append(subs, p.Subcategory)
		}
	}
	sort.Strings(subs)
	return subs
}

// Stats summarizes the catalog. Price figures only consider normalized
// prices greater than zero and are rounded to cents.
func (s *CatalogService) Stats() domain.ProductStats {
	stats := domain.ProductStats{
		TotalProducts:   len(s.products),
		TotalCategories: len(s.AllCategories()),
		TotalTags:       len(s.AllTags()),
	}

	var prices []float64
	for _, p := range s.products {
		if resolveStock(p) {
			stats.InStockCount++
		} else {
			stats.OutOfStockCount++
		}
		if price := resolvePrice(p); price > 0 {
			prices = append(prices, price)
		}
	}

	if len(prices) > 0 {
		sum := 0.0
		min := prices[0]
		max := prices[0]
		for _, p := range prices {
			sum += p
			if p < min {
				min = p
			}
			if p > max {
				max = p
			}
		}
		stats.AveragePrice = roundCents(sum / float64(len(prices)))
		stats.MinPrice = roundCents(min)
		stats.MaxPrice = roundCents(max)
	}

	return stats
}

// roundCents rounds to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPrice formats a price as a USD string (e.g., "$24.99").
// Invalid values format as "$0.00".
func FormatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "$0.00"
	}
	return fmt.Sprintf("$%.2f", price)
}
