package domain

import (
	"context"
	"time"
)

// DemandClient defines the interface for the external keyword-demand source
type DemandClient interface {
	FetchDemand(ctx context.Context, productName string) (*DemandResult, error)
}

// EmbeddingProvider defines the interface for the text-embedding capability.
// Query and passage embeddings carry different instruction prefixes because
// e5-family models are trained with asymmetric inputs.
type EmbeddingProvider interface {
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
	EmbedPassage(ctx context.Context, text string) ([]float64, error)
}

// DemandCache defines the interface for caching demand results between runs
type DemandCache interface {
	Get(ctx context.Context, key string) (*DemandResult, error)
	Set(ctx context.Context, key string, value *DemandResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
