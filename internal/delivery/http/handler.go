package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promorank/backend/internal/domain"
)

// Ranker abstracts the ranking pipeline for the HTTP layer
type Ranker interface {
	Rank(ctx context.Context, catalog []domain.ProductRecord) ([]domain.ScoredProduct, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	ranker      Ranker
	defaultTopK int
}

// NewHandler creates a new HTTP handler
func NewHandler(ranker Ranker, defaultTopK int) *Handler {
	if defaultTopK <= 0 {
		defaultTopK = 3
	}
	return &Handler{
		ranker:      ranker,
		defaultTopK: defaultTopK,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "promorank-backend",
		"version": "1.0.0",
	})
}

// RankProducts scores the submitted catalog and returns the ranked list
// plus the top-K subset consumed by the campaign generator.
func (h *Handler) RankProducts(c *gin.Context) {
	var req domain.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ranked, err := h.ranker.Rank(c.Request.Context(), req.Products)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCatalog), errors.Is(err, domain.ErrInvalidProduct):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = h.defaultTopK
	}

	c.JSON(http.StatusOK, domain.RankResponse{
		Count:    len(ranked),
		Top:      topKPrefix(ranked, topK),
		Products: ranked,
	})
}

// topKPrefix returns the first k elements of an already-sorted list
func topKPrefix(ranked []domain.ScoredProduct, k int) []domain.ScoredProduct {
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}
