package embedding

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/promorank/backend/internal/domain"
)

// Client produces dense text embeddings via an OpenAI-compatible server.
// The base URL may point at the OpenAI API or a local llama.cpp/vLLM server
// hosting an e5-family model; it must include the /v1 suffix.
type Client struct {
	api           openai.Client
	model         string
	queryPrefix   string
	passagePrefix string
}

// Config holds embedding client settings
type Config struct {
	BaseURL       string
	APIKey        string
	Model         string
	QueryPrefix   string
	PassagePrefix string
}

// NewClient creates a new embedding client
func NewClient(cfg Config) *Client {
	opts := []option.RequestOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	return &Client{
		api:           openai.NewClient(opts...),
		model:         cfg.Model,
		queryPrefix:   cfg.QueryPrefix,
		passagePrefix: cfg.PassagePrefix,
	}
}

// EmbedQuery embeds anchor/query text with the query instruction prefix.
// e5-family models are trained with asymmetric query/passage inputs, so the
// prefix is part of the contract rather than cosmetic.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	return c.embed(ctx, c.queryPrefix+text)
}

// EmbedPassage embeds document text with the passage instruction prefix
func (c *Client) EmbedPassage(ctx context.Context, text string) ([]float64, error) {
	return c.embed(ctx, c.passagePrefix+text)
}

func (c *Client) embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingFailure, err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding in response", domain.ErrEmbeddingFailure)
	}

	return resp.Data[0].Embedding, nil
}
