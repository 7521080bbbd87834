package wordstat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/promorank/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the Yandex Wordstat topRequests API
type Client struct {
	httpClient  *http.Client
	token       string
	baseURL     string
	devices     []string
	rateLimiter *rate.Limiter
	debug       bool
}

// Config holds Wordstat client settings
type Config struct {
	Token     string
	BaseURL   string
	Devices   []string
	Timeout   time.Duration
	RateRPS   float64
	RateBurst int
}

// NewClient creates a new Wordstat API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	devices := cfg.Devices
	if len(devices) == 0 {
		devices = []string{"phone", "desktop"}
	}

	rps := cfg.RateRPS
	if rps <= 0 {
		rps = 5.0
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 10
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		token:       cfg.Token,
		baseURL:     cfg.BaseURL,
		devices:     devices,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// FetchDemand queries related-keyword counts for a product name and sums them.
// Any transport error, non-2xx status or malformed body is returned to the
// caller; the ranking pipeline decides whether to degrade or abort.
func (c *Client) FetchDemand(ctx context.Context, productName string) (*domain.DemandResult, error) {
	if productName == "" {
		return nil, domain.ErrInvalidRequest
	}

	// Wait for rate limiter
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	payload := domain.TopRequestsPayload{
		Phrase:  productName,
		Devices: c.devices,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/topRequests", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", "PromoRank/1.0")

	if c.debug {
		log.Printf("[WORDSTAT] POST %s phrase=%q", endpoint, productName)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWordstatAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d, body: %s",
			domain.ErrWordstatAPIFailure, resp.StatusCode, string(respBody))
	}

	var topResp domain.TopRequestsResponse
	if err := json.NewDecoder(resp.Body).Decode(&topResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrWordstatAPIFailure, err)
	}

	total := topResp.TotalCount()
	if c.debug {
		log.Printf("[WORDSTAT] phrase=%q entries=%d total=%d", productName, len(topResp.TopRequests), total)
	}

	return &domain.DemandResult{TotalCount: total}, nil
}
