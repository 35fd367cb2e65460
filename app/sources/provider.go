package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/autoxpress/partsearch/app/listing"
)

// Provider is one marketplace backend. Implementations translate a Query
// into whatever request shape the marketplace expects and map its response
// into raw listings; normalization and ranking happen downstream.
type Provider interface {
	ID() string
	Name() string
	Search(ctx context.Context, query Query) ([]listing.RawListing, error)
}

// NewProvider builds the provider for a source config.
func NewProvider(config *Config, client *http.Client, userAgent string) (Provider, error) {
	base := providerBase{
		config:    config,
		client:    client,
		userAgent: userAgent,
	}

	switch config.Source.Kind {
	case "ebay":
		return &EbayProvider{providerBase: base}, nil
	case "google":
		return &GoogleShoppingProvider{providerBase: base}, nil
	case "amazon":
		return &AmazonProvider{providerBase: base}, nil
	case "rss":
		return NewDealsFeedProvider(base), nil
	default:
		return nil, fmt.Errorf("unknown source kind: %s", config.Source.Kind)
	}
}

type providerBase struct {
	config    *Config
	client    *http.Client
	userAgent string
}

func (p *providerBase) ID() string {
	return p.config.ID
}

func (p *providerBase) Name() string {
	return p.config.Source.Name
}

func (p *providerBase) apiKey() string {
	if p.config.Source.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.config.Source.APIKeyEnv)
}

// fetch performs a GET against the source with the configured timeout and
// user agent. Non-200 responses are errors; the caller decides whether a
// failed source is fatal for the whole search.
func (p *providerBase) fetch(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(p.config.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)
	if key := p.apiKey(); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", p.config.Source.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error from %s: %d %s", p.config.Source.Name, resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (p *providerBase) limit(query Query) int {
	limit := p.config.Settings.MaxResults
	if query.MaxResults > 0 && query.MaxResults < limit {
		limit = query.MaxResults
	}
	return limit
}
