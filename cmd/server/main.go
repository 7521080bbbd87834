package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/promorank/backend/config"
	httpDelivery "github.com/promorank/backend/internal/delivery/http"
	"github.com/promorank/backend/internal/infrastructure/cache"
	"github.com/promorank/backend/internal/infrastructure/embedding"
	"github.com/promorank/backend/internal/infrastructure/wordstat"
	"github.com/promorank/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PromoRank Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	demandCache := cache.NewMemoryCache()
	log.Printf("Demand cache TTL: %s", cfg.Cache.TTL)

	wordstatClient := wordstat.NewClient(wordstat.Config{
		Token:     cfg.Wordstat.Token,
		BaseURL:   cfg.Wordstat.BaseURL,
		Devices:   cfg.Wordstat.Devices,
		Timeout:   cfg.Wordstat.Timeout,
		RateRPS:   cfg.Wordstat.RateRPS,
		RateBurst: cfg.Wordstat.RateBurst,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		wordstatClient.SetDebug(true)
		log.Printf("Wordstat client debug mode enabled")
	}
	log.Printf("Wordstat API configured: %s (devices: %v)", cfg.Wordstat.BaseURL, cfg.Wordstat.Devices)

	embeddingClient := embedding.NewClient(embedding.Config{
		BaseURL:       cfg.Embedding.BaseURL,
		APIKey:        cfg.Embedding.APIKey,
		Model:         cfg.Embedding.Model,
		QueryPrefix:   cfg.Embedding.QueryPrefix,
		PassagePrefix: cfg.Embedding.PassagePrefix,
	})
	log.Printf("Embedding provider: %s (model: %s)", cfg.Embedding.BaseURL, cfg.Embedding.Model)

	// Embed the six anchor phrases up front. Without the reference vectors
	// no product can be scored, so a failure here is fatal.
	anchorCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	appealScorer, err := usecase.NewAppealScorer(anchorCtx, embeddingClient)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize appeal scorer: %v", err)
	}
	log.Printf("Anchor embeddings computed")

	// Initialize usecase layer
	rankingService := usecase.NewRankingService(
		wordstatClient,
		embeddingClient,
		demandCache,
		appealScorer,
		usecase.RankingServiceConfig{
			CacheTTL:             cfg.Cache.TTL,
			MaxConcurrentFetches: cfg.Ranking.MaxConcurrentFetches,
			EnableDebugLogging:   cfg.Server.Environment == "development",
		},
	)

	log.Printf("Ranking: max_concurrent_fetches=%d, default_top_k=%d",
		cfg.Ranking.MaxConcurrentFetches, cfg.Ranking.DefaultTopK)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(rankingService, cfg.Ranking.DefaultTopK)

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
