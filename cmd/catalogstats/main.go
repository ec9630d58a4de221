// Command catalogstats prints a summary of a catalog file: overall
// stats plus a per-category breakdown. Useful for sanity-checking a
// fresh Shopify export before deploying it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/rikbanerjee/thecustomhub/internal/infrastructure/catalog"
	"github.com/rikbanerjee/thecustomhub/internal/infrastructure/images"
	"github.com/rikbanerjee/thecustomhub/internal/usecase"
)

func main() {
	source := flag.String("catalog", "./data/products.json", "catalog file path or URL")
	bucket := flag.String("bucket", "thecustomhub-efb8a.firebasestorage.app", "storage bucket for image URLs")
	flag.Parse()

	loader := catalog.NewLoader(*source, 30*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	products, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	svc := usecase.NewCatalogService(products, images.NewResolver(*bucket))
	stats := svc.Stats()

	fmt.Printf("Catalog: %s\n\n", *source)
	fmt.Printf("  Products:       %d (%d in stock, %d out of stock)\n",
		stats.TotalProducts, stats.InStockCount, stats.OutOfStockCount)
	fmt.Printf("  Categories:     %d\n", stats.TotalCategories)
	fmt.Printf("  Tags:           %d\n", stats.TotalTags)
	fmt.Printf("  Price range:    %s - %s (avg %s)\n\n",
		usecase.FormatPrice(stats.MinPrice),
		usecase.FormatPrice(stats.MaxPrice),
		usecase.FormatPrice(stats.AveragePrice))

	printCategoryTable(svc)
}

// printCategoryTable renders the category breakdown with columns
// aligned by display width, so CJK category names line up too.
func printCategoryTable(svc *usecase.CatalogService) {
	categories := svc.AllCategories()
	if len(categories) == 0 {
		fmt.Println("  (no categories)")
		return
	}

	nameWidth := runewidth.StringWidth("Category")
	slugWidth := runewidth.StringWidth("Slug")
	for _, c := range categories {
		if w := runewidth.StringWidth(c.Name); w > nameWidth {
			nameWidth = w
		}
		if w := runewidth.StringWidth(c.ID); w > slugWidth {
			slugWidth = w
		}
	}

	fmt.Printf("  %s  %s  %s\n",
		runewidth.FillRight("Category", nameWidth),
		runewidth.FillRight("Slug", slugWidth),
		"Products")
	fmt.Printf("  %s  %s  %s\n",
		strings.Repeat("-", nameWidth),
		strings.Repeat("-", slugWidth),
		strings.Repeat("-", len("Products")))

	for _, c := range categories {
		fmt.Printf("  %s  %s  %d\n",
			runewidth.FillRight(c.Name, nameWidth),
			runewidth.FillRight(c.ID, slugWidth),
			c.ProductCount)
	}
}
