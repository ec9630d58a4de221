package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rikbanerjee/thecustomhub/config"
	httpDelivery "github.com/rikbanerjee/thecustomhub/internal/delivery/http"
	"github.com/rikbanerjee/thecustomhub/internal/infrastructure/cache"
	catalogSource "github.com/rikbanerjee/thecustomhub/internal/infrastructure/catalog"
	"github.com/rikbanerjee/thecustomhub/internal/infrastructure/images"
	"github.com/rikbanerjee/thecustomhub/internal/usecase"
)

func main() {
	// Load .env if present; environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: no .env file found, relying on system environment")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting The Custom Hub backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog source: %s", cfg.Catalog.Source)
	log.Printf("Storage bucket: %s", cfg.Storage.Bucket)

	// Load the catalog once; it is read-only for the process lifetime
	loader := catalogSource.NewLoader(cfg.Catalog.Source, cfg.Catalog.FetchTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.FetchTimeout)
	products, err := loader.Load(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Wire up the query engine and its collaborators
	resolver := images.NewResolver(cfg.Storage.Bucket)
	catalogService := usecase.NewCatalogService(products, resolver)
	responseCache := cache.NewMemoryCache()

	log.Printf("Catalog ready: %d products, %d categories",
		len(products), len(catalogService.AllCategories()))

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService, resolver, responseCache, cfg.Cache.TTL)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
