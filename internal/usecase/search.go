package usecase

import (
	"sort"
	"strings"

	"github.com/rikbanerjee/thecustomhub/internal/domain"
)

// Relevance weights for search. The query is matched as one literal
// case-insensitive substring against each field; scores are additive.
// These constants are tuning values carried over from the storefront
// and must not be reweighted without re-ranking the live site.
const (
	scoreTitle        = 10
	scoreTags         = 5
	scoreDescription  = 3
	scoreTypeCategory = 1
)

// Similarity weights for related-product lookup.
const (
	scoreSameCategory = 5
	scorePerSharedTag = 2
)

// scoredProduct pairs a raw product with its computed score.
type scoredProduct struct {
	raw   domain.RawProduct
	score int
}

// SearchProducts scores every product against the query and returns the
// matches (score > 0), normalized, in descending relevance order. Ties
// keep catalog order. An empty or whitespace query matches nothing.
func (s *CatalogService) SearchProducts(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Product{}
	}

	var matches []scoredProduct
	for _, p := range s.products {
		if score := relevanceScore(p, q); score > 0 {
			matches = append(matches, scoredProduct{raw: p, score: score})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})

	results := make([]domain.Product, 0, len(matches))
	for _, m := range matches {
		results = append(results, s.Normalize(m.raw))
	}
	return results
}

// relevanceScore computes the additive relevance of a product for a
// lowercased, trimmed query.
func relevanceScore(p domain.RawProduct, query string) int {
	score := 0

	if strings.Contains(strings.ToLower(p.Title), query) {
		score += scoreTitle
	}

	if len(p.Tags) > 0 {
		joined := strings.ToLower(strings.Join(p.Tags, " "))
		if strings.Contains(joined, query) {
			score += scoreTags
		}
	}

	if strings.Contains(strings.ToLower(p.Description.SearchText()), query) {
		score += scoreDescription
	}

	if strings.Contains(strings.ToLower(p.Type), query) ||
		strings.Contains(strings.ToLower(p.Category), query) {
		score += scoreTypeCategory
	}

	return score
}

// RelatedProducts returns up to count products similar to the given
// one, scored by shared category and tags, in descending similarity
// order with catalog-order ties. The source product itself is always
// excluded. An unknown id yields an empty result.
func (s *CatalogService) RelatedProducts(id string, count int) []domain.Product {
	if count <= 0 {
		count = 4
	}

	source, err := s.ProductByID(id)
	if err != nil {
		return []domain.Product{}
	}

	var scored []scoredProduct
	for _, p := range s.products {
		if p.ID == id {
			continue
		}
		scored = append(scored, scoredProduct{raw: p, score: similarityScore(p, source)})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	if len(scored) > count {
		scored = scored[:count]
	}

	results := make([]domain.Product, 0, len(scored))
	for _, m := range scored {
		results = append(results, s.Normalize(m.raw))
	}
	return results
}

// similarityScore computes how related a candidate is to the source
// product: same derived category slug and per-shared-tag bonuses.
func similarityScore(candidate domain.RawProduct, source *domain.Product) int {
	score := 0

	typ := candidate.Type
	if strings.TrimSpace(typ) == "" {
		typ = defaultCategoryName
	}
	if Slugify(typ) == source.Category {
		score += scoreSameCategory
	}

	for _, t := range candidate.Tags {
		for _, st := range source.Tags {
			if strings.EqualFold(t, st) {
				score += scorePerSharedTag
				break
			}
		}
	}

	return score
}
