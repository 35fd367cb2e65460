package sources

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/autoxpress/partsearch/app/listing"
)

// AmazonProvider synthesizes deterministic mock listings. There is no real
// Amazon integration; the front end has always shown mocked Amazon results
// and this keeps that behavior. Prices and conditions are derived from a
// hash of the search term so repeated searches return identical listings.
type AmazonProvider struct {
	providerBase
}

var amazonTemplates = []struct {
	titleSuffix string
	condition   string
	shipping    string
	basePrice   float64
}{
	{"- Premium Quality", "New", "Free Shipping", 89.99},
	{"Replacement, OEM Fit", "New", "Free Shipping", 64.49},
	{"- Value Pack", "New", "$4.99 Shipping", 42.99},
	{"(Renewed)", "Refurbished", "Free Shipping", 37.99},
}

func (p *AmazonProvider) Search(ctx context.Context, query Query) ([]listing.RawListing, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	term := query.Term()
	if term == "" {
		return nil, nil
	}

	seed := fnv32(term)
	limit := p.limit(query)
	if limit > len(amazonTemplates) {
		limit = len(amazonTemplates)
	}

	raws := make([]listing.RawListing, 0, limit)
	for i := 0; i < limit; i++ {
		template := amazonTemplates[i]

		// Spread prices a little per term so different searches do not
		// all show the same numbers.
		price := template.basePrice + float64((seed+uint32(i)*7)%2000)/100

		raws = append(raws, listing.RawListing{
			Title:     strings.TrimSpace(fmt.Sprintf("%s %s", titleCase(term), template.titleSuffix)),
			Price:     fmt.Sprintf("%.2f", price),
			Condition: template.condition,
			Shipping:  template.shipping,
			Link:      fmt.Sprintf("https://www.amazon.com/s?k=%s", strings.ReplaceAll(term, " ", "+")),
			Source:    p.Name(),
			Extra: map[string]interface{}{
				"mock": true,
			},
		})
	}

	return raws, nil
}

func fnv32(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
