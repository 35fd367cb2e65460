package sources

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/mmcdole/gofeed"

	"github.com/autoxpress/partsearch/app/listing"
)

// DealsFeedProvider ingests an RSS/Atom deals feed and surfaces entries whose
// titles mention the searched part. Deal feeds carry prices inside titles
// ("Bosch Alternator - $89.99"), so the price is scraped from there.
type DealsFeedProvider struct {
	providerBase
	parser *gofeed.Parser
}

func NewDealsFeedProvider(base providerBase) *DealsFeedProvider {
	return &DealsFeedProvider{
		providerBase: base,
		parser:       gofeed.NewParser(),
	}
}

var titlePricePattern = regexp.MustCompile(`\$\d[\d,]*(?:\.\d{1,2})?`)

func (p *DealsFeedProvider) Search(ctx context.Context, query Query) ([]listing.RawListing, error) {
	data, err := p.fetch(ctx, p.config.Source.URL)
	if err != nil {
		return nil, err
	}

	feed, err := p.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse deals feed: %w", err)
	}

	keyword, hasPart := listing.MatchPartKeyword(query.Term())
	limit := p.limit(query)

	var raws []listing.RawListing
	for _, item := range feed.Items {
		if item == nil || len(raws) >= limit {
			continue
		}

		// With a part in the query, only matching deals are relevant;
		// without one every deal qualifies.
		if hasPart {
			itemKeyword, ok := listing.MatchPartKeyword(item.Title)
			if !ok || itemKeyword != keyword {
				continue
			}
		}

		raw := listing.RawListing{
			ID:       item.GUID,
			Title:    item.Title,
			Price:    titlePricePattern.FindString(item.Title),
			Link:     item.Link,
			Source:   p.Name(),
			Shipping: "",
		}

		if item.Image != nil {
			raw.Image = item.Image.URL
		}
		if item.Description != "" {
			raw.Extra = map[string]interface{}{
				"dealDescription": item.Description,
			}
		}

		raws = append(raws, raw)
	}

	return raws, nil
}
