package main

import (
	"fmt"
	"log"
	"os"

	"github.com/invoiceagent/backend/config"
	httpDelivery "github.com/invoiceagent/backend/internal/delivery/http"
	"github.com/invoiceagent/backend/internal/infrastructure/csvstore"
	"github.com/invoiceagent/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Invoice Agent Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s (cache TTL %s)", cfg.Catalog.Path, cfg.Catalog.CacheTTL)
	log.Printf("Alias store: %s", cfg.Alias.Path)

	// Initialize infrastructure dependencies
	catalogStore := csvstore.NewCatalogStore(cfg.Catalog.Path, cfg.Catalog.CacheTTL)
	aliasStore := csvstore.NewAliasStore(cfg.Alias.Path)

	// A broken catalog file is surfaced per request, not at startup, but
	// warn early so misconfiguration is visible in the logs
	if _, err := os.Stat(cfg.Catalog.Path); err != nil {
		log.Printf("WARNING: catalog file not readable (%v) - matching requests without an inline product_db will fail", err)
	}

	// Initialize usecase layer
	matcher := usecase.NewMatchingService(usecase.MatchConfig{
		Threshold:          cfg.Matching.Threshold,
		SuggestionFloor:    cfg.Matching.SuggestionFloor,
		PropagateCurrency:  cfg.Matching.PropagateCurrency,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})

	log.Printf("Matching: threshold=%d, suggestion_floor=%d, propagate_currency=%v, debug=%v",
		cfg.Matching.Threshold,
		cfg.Matching.SuggestionFloor,
		cfg.Matching.PropagateCurrency,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(matcher, catalogStore, aliasStore)

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
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
