package defillama

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/feral-file/ff-revenue-sync/internal/adapter"
	"github.com/feral-file/ff-revenue-sync/internal/domain"
	"github.com/feral-file/ff-revenue-sync/internal/ratelimit"
)

const (
	// API_ENDPOINT is the base URL of the DefiLlama API
	API_ENDPOINT = "https://api.llama.fi"
)

// Client defines the interface for upstream analytics operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/defillama_client.go -package=mocks -mock_names=Client=MockDefillamaClient
type Client interface {
	// FetchCatalog fetches the full protocol catalog
	FetchCatalog(ctx context.Context) ([]CatalogEntry, error)

	// FetchMetricSummary fetches the full daily series of a metric for one protocol
	FetchMetricSummary(ctx context.Context, slug string, kind domain.MetricKind) (*MetricSummary, error)
}

// DefillamaClient implements Client on top of the shared rate-limited queue
type DefillamaClient struct {
	httpClient adapter.HTTPClient
	queue      ratelimit.Queue
	apiBaseURL string
}

// NewClient creates a new upstream client.
// Every request goes through queue; pass the same queue to every client of the process.
func NewClient(httpClient adapter.HTTPClient, queue ratelimit.Queue, apiBaseURL string) Client {
	if apiBaseURL == "" {
		apiBaseURL = API_ENDPOINT
	}
	return &DefillamaClient{
		httpClient: httpClient,
		queue:      queue,
		apiBaseURL: strings.TrimSuffix(apiBaseURL, "/"),
	}
}

// FetchCatalog fetches the full protocol catalog from the fees overview
func (c *DefillamaClient) FetchCatalog(ctx context.Context) ([]CatalogEntry, error) {
	u := fmt.Sprintf("%s/overview/fees?excludeTotalDataChart=true&excludeTotalDataChartBreakdown=true", c.apiBaseURL)

	response, err := ratelimit.Request(ctx, c.queue, func(ctx context.Context) (*CatalogResponse, error) {
		var response CatalogResponse
		if err := c.httpClient.Get(ctx, u, &response); err != nil {
			return nil, err
		}
		return &response, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch protocol catalog: %w", err)
	}

	return response.Protocols, nil
}

// FetchMetricSummary fetches the full daily series of a metric for one protocol.
// The upstream has no date-ranged query, the whole series is always returned.
func (c *DefillamaClient) FetchMetricSummary(ctx context.Context, slug string, kind domain.MetricKind) (*MetricSummary, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMetricKind, kind)
	}

	u := fmt.Sprintf("%s/summary/fees/%s?dataType=%s", c.apiBaseURL, url.PathEscape(slug), kind.UpstreamDataType())

	response, err := ratelimit.Request(ctx, c.queue, func(ctx context.Context) (*SummaryResponse, error) {
		var response SummaryResponse
		if err := c.httpClient.Get(ctx, u, &response); err != nil {
			return nil, err
		}
		return &response, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s summary for %s: %w", kind, slug, err)
	}

	if len(response.TotalDataChartBreakdown) > 0 {
		return &MetricSummary{Points: response.TotalDataChartBreakdown, HasBreakdown: true}, nil
	}
	return &MetricSummary{Points: response.TotalDataChart}, nil
}
