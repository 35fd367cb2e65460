package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/autoxpress/partsearch/app/cache"
	"github.com/autoxpress/partsearch/app/listing"
	"github.com/autoxpress/partsearch/app/ranking"
	"github.com/autoxpress/partsearch/app/sources"
)

// Result is one completed search: ranked listings plus the per-provider
// breakdown used by the API layer.
type Result struct {
	Listings  []ranking.RankedListing `json:"results"`
	Total     int                     `json:"total"`
	Providers map[string]int          `json:"providers"`
	Cached    bool                    `json:"cached"`
}

// Service fans a query out to every configured provider, normalizes and
// ranks the merged listings, and caches the final result set.
type Service struct {
	providers  []sources.Provider
	normalizer *listing.Normalizer
	ranker     *ranking.Ranker
	cache      *cache.Cache
}

func NewService(providers []sources.Provider, normalizer *listing.Normalizer,
	ranker *ranking.Ranker, resultCache *cache.Cache) *Service {
	return &Service{
		providers:  providers,
		normalizer: normalizer,
		ranker:     ranker,
		cache:      resultCache,
	}
}

// Search runs the full pipeline for one query. A provider failure is logged
// and skipped; the search fails only when the query itself is empty of
// meaning, which yields an empty result rather than an error.
func (s *Service) Search(ctx context.Context, query sources.Query) (*Result, error) {
	key := cache.SearchKey(canonicalQuery(query))

	cached, hit, err := s.cache.GetResults(ctx, key)
	if err != nil {
		slog.Warn("Cache lookup failed, running search", "key", key, "error", err)
	}
	if hit {
		slog.Debug("Search cache hit", "key", key, "count", len(cached))
		return &Result{
			Listings:  cached,
			Total:     len(cached),
			Providers: providerCounts(cached),
			Cached:    true,
		}, nil
	}

	raw, counts := s.fanOut(ctx, query)

	listings := s.normalizer.Run(raw)
	ranked := s.ranker.Run(listings, query.Vehicle)

	if len(ranked) > 0 {
		if err := s.cache.SetResults(ctx, key, ranked); err != nil {
			slog.Warn("Failed to cache search results", "key", key, "error", err)
		}
	}

	slog.Debug("Search completed", "term", query.Term(), "total", len(ranked), "providers", len(counts))

	return &Result{
		Listings:  ranked,
		Total:     len(ranked),
		Providers: counts,
		Cached:    false,
	}, nil
}

// fanOut queries every provider concurrently and merges the raw listings.
// Merge order is provider registration order so ranking ties stay stable
// across runs.
func (s *Service) fanOut(ctx context.Context, query sources.Query) ([]listing.RawListing, map[string]int) {
	type providerResult struct {
		listings []listing.RawListing
		err      error
	}

	results := make([]providerResult, len(s.providers))

	var wg sync.WaitGroup
	for i, provider := range s.providers {
		wg.Add(1)
		go func(i int, provider sources.Provider) {
			defer wg.Done()
			listings, err := provider.Search(ctx, query)
			results[i] = providerResult{listings: listings, err: err}
		}(i, provider)
	}
	wg.Wait()

	var merged []listing.RawListing
	counts := make(map[string]int)
	for i, provider := range s.providers {
		if results[i].err != nil {
			slog.Warn("Provider search failed", "provider", provider.Name(), "error", results[i].err)
			continue
		}
		merged = append(merged, results[i].listings...)
		counts[provider.Name()] = len(results[i].listings)
	}

	return merged, counts
}

// canonicalQuery flattens a query into a deterministic cache key input:
// lowercased descriptor fields in fixed order, then the free text.
func canonicalQuery(query sources.Query) string {
	parts := []string{
		query.Vehicle.Year,
		query.Vehicle.Make,
		query.Vehicle.Model,
		query.Vehicle.Part,
		query.Text,
	}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}

func providerCounts(listings []ranking.RankedListing) map[string]int {
	counts := make(map[string]int)
	for _, l := range listings {
		counts[l.Source]++
	}
	return counts
}

// SourceNames returns the configured provider names, sorted for stable
// presentation in the stats endpoint.
func (s *Service) SourceNames() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	sort.Strings(names)
	return names
}
