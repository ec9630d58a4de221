package usecase

import (
	"testing"

	"github.com/rikbanerjee/thecustomhub/internal/domain"
)

func TestSearchProducts(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	t.Run("title match ranks above description match", func(t *testing.T) {
		svc := newTestService([]domain.RawProduct{
			{ID: "desc", Title: "Ceramic Cup", Description: domain.TextDescription("A mug for coffee.")},
			{ID: "title", Title: "Red Mug", Description: domain.TextDescription("For coffee.")},
		})

		results := svc.SearchProducts("mug")
		if len(results) != 2 {
			t.Fatalf("len = %d, want 2", len(results))
		}
		if results[0].ID != "title" {
			t.Errorf("results[0] = %q, want the title match first", results[0].ID)
		}
	})

	t.Run("empty and whitespace queries match nothing", func(t *testing.T) {
		if got := svc.SearchProducts(""); len(got) != 0 {
			t.Errorf("empty query returned %d results", len(got))
		}
		if got := svc.SearchProducts("   "); len(got) != 0 {
			t.Errorf("whitespace query returned %d results", len(got))
		}
	})

	t.Run("matching is case-insensitive substring", func(t *testing.T) {
		results := svc.SearchProducts("RED")
		if len(results) == 0 || results[0].ID != "a" {
			t.Fatalf("results = %v, want [a ...]", results)
		}
	})

	t.Run("multi-word query matches as one literal substring", func(t *testing.T) {
		if got := svc.SearchProducts("red mug"); len(got) != 1 || got[0].ID != "a" {
			t.Errorf("got %d results, want exactly [a]", len(got))
		}
		// Words present but not adjacent must not match.
		if got := svc.SearchProducts("mug red"); len(got) != 0 {
			t.Errorf("non-contiguous words matched %d products", len(got))
		}
	})

	t.Run("tag match scores between title and description", func(t *testing.T) {
		svc := newTestService([]domain.RawProduct{
			{ID: "bydesc", Title: "Candle", Description: domain.TextDescription("diwali gift idea")},
			{ID: "bytag", Title: "Lantern", Tags: []string{"Diwali"}},
		})
		results := svc.SearchProducts("diwali")
		if len(results) != 2 {
			t.Fatalf("len = %d, want 2", len(results))
		}
		if results[0].ID != "bytag" {
			t.Errorf("results[0] = %q, want the tag match first", results[0].ID)
		}
	})

	t.Run("type match contributes the minimal score", func(t *testing.T) {
		results := svc.SearchProducts("apparel")
		if len(results) != 2 {
			t.Fatalf("len = %d, want 2 products of type Apparel", len(results))
		}
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		svc := newTestService([]domain.RawProduct{
			{ID: "first", Title: "Brass Diya"},
			{ID: "second", Title: "Clay Diya"},
		})
		results := svc.SearchProducts("diya")
		if results[0].ID != "first" || results[1].ID != "second" {
			t.Errorf("tie order = [%s %s], want catalog order", results[0].ID, results[1].ID)
		}
	})

	t.Run("results are normalized", func(t *testing.T) {
		results := svc.SearchProducts("mug")
		if len(results) == 0 {
			t.Fatal("no results")
		}
		if results[0].Price != 8 {
			t.Errorf("Price = %v, want normalized minimum variant price 8", results[0].Price)
		}
		if results[0].Category != "home-decor" {
			t.Errorf("Category = %q, want home-decor", results[0].Category)
		}
	})
}

func TestRelatedProducts(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	t.Run("never includes the source product", func(t *testing.T) {
		for _, p := range svc.RelatedProducts("a", 10) {
			if p.ID == "a" {
				t.Fatal("related products include the source product")
			}
		}
	})

	t.Run("same category plus shared tags rank first", func(t *testing.T) {
		// Related to b (apparel, tags Diwali+Cotton):
		//   c scores 5 (category) + 2 (Cotton) = 7
		//   a scores 0 + 2 (Diwali) = 2
		related := svc.RelatedProducts("b", 4)
		if len(related) < 2 {
			t.Fatalf("len = %d, want >= 2", len(related))
		}
		if related[0].ID != "c" {
			t.Errorf("related[0] = %q, want c", related[0].ID)
		}
		if related[1].ID != "a" {
			t.Errorf("related[1] = %q, want a", related[1].ID)
		}
	})

	t.Run("respects the count limit", func(t *testing.T) {
		if got := svc.RelatedProducts("a", 1); len(got) != 1 {
			t.Errorf("len = %d, want 1", len(got))
		}
	})

	t.Run("defaults count to four", func(t *testing.T) {
		svc := newTestService([]domain.RawProduct{
			{ID: "src", Title: "Src", Type: "T"},
			{ID: "1", Title: "1", Type: "T"},
			{ID: "2", Title: "2", Type: "T"},
			{ID: "3", Title: "3", Type: "T"},
			{ID: "4", Title: "4", Type: "T"},
			{ID: "5", Title: "5", Type: "T"},
		})
		if got := svc.RelatedProducts("src", 0); len(got) != 4 {
			t.Errorf("len = %d, want 4", len(got))
		}
	})

	t.Run("unknown id yields empty result", func(t *testing.T) {
		if got := svc.RelatedProducts("nope", 4); len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("zero-score products still fill the count", func(t *testing.T) {
		related := svc.RelatedProducts("d", 4)
		if len(related) != 3 {
			t.Errorf("len = %d, want 3 (everything except d)", len(related))
		}
	})
}
