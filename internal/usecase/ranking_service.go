package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/promorank/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// RankingServiceConfig holds configuration for the ranking service
type RankingServiceConfig struct {
	CacheTTL             time.Duration
	MaxConcurrentFetches int
	EnableDebugLogging   bool
}

// RankingService orchestrates demand fetching, appeal scoring and final
// ordering. It is the only component holding end-to-end control flow.
type RankingService struct {
	demandClient  domain.DemandClient
	embedder      domain.EmbeddingProvider
	cache         domain.DemandCache
	appealScorer  *AppealScorer
	cacheTTL      time.Duration
	maxConcurrent int
	debugLogging  bool
}

// NewRankingService creates a new ranking service with dependencies
func NewRankingService(
	demandClient domain.DemandClient,
	embedder domain.EmbeddingProvider,
	cache domain.DemandCache,
	appealScorer *AppealScorer,
	config RankingServiceConfig,
) *RankingService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	maxConcurrent := config.MaxConcurrentFetches
	if maxConcurrent <= 0 {
		maxConcurrent = 16
	}

	return &RankingService{
		demandClient:  demandClient,
		embedder:      embedder,
		cache:         cache,
		appealScorer:  appealScorer,
		cacheTTL:      cacheTTL,
		maxConcurrent: maxConcurrent,
		debugLogging:  config.EnableDebugLogging,
	}
}

// Rank scores the full catalog and returns it sorted by final score descending.
// Flow: validate -> concurrent demand fan-out -> per-product embed and score
// -> stable sort. A demand failure degrades that product to zero demand; an
// embedding failure drops that product from the output.
func (s *RankingService) Rank(ctx context.Context, catalog []domain.ProductRecord) ([]domain.ScoredProduct, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}

	demands := s.fetchAllDemand(ctx, catalog)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scored := make([]domain.ScoredProduct, 0, len(catalog))
	for i, product := range catalog {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		passage := product.Name + ". " + product.Description
		vec, err := s.embedder.EmbedPassage(ctx, passage)
		if err != nil {
			// A zero appeal score would be indistinguishable from a
			// legitimately poor one, so drop the product instead.
			log.Printf("[RANK] dropping %q: %v", product.Name, err)
			continue
		}

		appeal := s.appealScorer.Score(vec)
		margin := MarginPercent(product.Price, product.MarketCost)
		trend := TrendScore(demands[i].TotalCount)

		scored = append(scored, domain.ScoredProduct{
			ProductRecord: product,
			Demand:        demands[i],
			Appeal:        appeal,
			MarginPercent: margin,
			TrendScore:    trend,
			FinalScore:    FinalScore(appeal, margin, trend),
		})

		if s.debugLogging {
			log.Printf("[RANK] %q demand=%d margin=%.1f appeal=%.1f final=%.2f",
				product.Name, demands[i].TotalCount, margin, appeal.Mean(),
				scored[len(scored)-1].FinalScore)
		}
	}

	// Stable sort so products with equal scores keep catalog order
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	return scored, nil
}

// fetchAllDemand issues one demand fetch per product with all requests in
// flight concurrently, bounded by the configured limit. Results land at the
// same index as their product; completion order never leaks into the output.
func (s *RankingService) fetchAllDemand(ctx context.Context, catalog []domain.ProductRecord) []domain.DemandResult {
	demands := make([]domain.DemandResult, len(catalog))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrent)

	for i, product := range catalog {
		i, product := i, product
		g.Go(func() error {
			demands[i] = s.fetchDemand(ctx, product.Name)
			return nil
		})
	}

	// Goroutines never return errors; failures degrade per product
	_ = g.Wait()

	return demands
}

// fetchDemand resolves one product's demand signal, consulting the cache
// first. Any fetch failure degrades to a zero count so a single product's
// data-source failure never aborts the batch.
func (s *RankingService) fetchDemand(ctx context.Context, productName string) domain.DemandResult {
	key := demandCacheKey(productName)

	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		if s.debugLogging {
			log.Printf("[RANK] demand cache hit for %q", productName)
		}
		return *cached
	}

	result, err := s.demandClient.FetchDemand(ctx, productName)
	if err != nil {
		log.Printf("[RANK] demand fetch failed for %q, degrading to zero: %v", productName, err)
		return domain.DemandResult{TotalCount: 0, Degraded: true}
	}

	if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
		log.Printf("[RANK] failed to cache demand for %q: %v", productName, err)
	}

	return *result
}

// ValidateCatalog rejects malformed catalogs before the pipeline runs
func ValidateCatalog(catalog []domain.ProductRecord) error {
	if len(catalog) == 0 {
		return domain.ErrEmptyCatalog
	}

	for i, product := range catalog {
		if strings.TrimSpace(product.Name) == "" {
			return fmt.Errorf("%w: product %d has no name", domain.ErrInvalidProduct, i)
		}
		if product.Price < 0 {
			return fmt.Errorf("%w: product %q has negative price", domain.ErrInvalidProduct, product.Name)
		}
		if product.MarketCost < 0 {
			return fmt.Errorf("%w: product %q has negative market cost", domain.ErrInvalidProduct, product.Name)
		}
	}

	return nil
}

// TopK returns the highest-scoring prefix of an already-ranked list
func TopK(ranked []domain.ScoredProduct, k int) []domain.ScoredProduct {
	if k <= 0 {
		return nil
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

// demandCacheKey normalizes a product name into a cache key.
// Format: "demand:{normalized_product_name}"
func demandCacheKey(productName string) string {
	normalized := strings.ToLower(productName)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return "demand:" + strings.TrimSpace(normalized)
}
