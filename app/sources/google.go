package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/autoxpress/partsearch/app/listing"
)

// GoogleShoppingProvider consumes the shopping_results JSON shape: prices
// arrive as display strings ("$79.99") and shipping as free-text delivery
// notes, both of which the normalizer and ranker handle downstream.
type GoogleShoppingProvider struct {
	providerBase
}

type googleShoppingResponse struct {
	ShoppingResults []googleShoppingResult `json:"shopping_results"`
}

type googleShoppingResult struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	OldPrice  string `json:"old_price"`
	Link      string `json:"link"`
	Thumbnail string `json:"thumbnail"`
	Store     string `json:"source"`
	Delivery  string `json:"delivery"`
	Condition string `json:"second_hand_condition"`
	Rating    float64 `json:"rating"`
	Reviews   int     `json:"reviews"`
}

func (p *GoogleShoppingProvider) Search(ctx context.Context, query Query) ([]listing.RawListing, error) {
	searchURL := fmt.Sprintf("%s?q=%s&num=%d",
		p.config.Source.URL, url.QueryEscape(query.Term()), p.limit(query))

	data, err := p.fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var response googleShoppingResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse Google Shopping response: %w", err)
	}

	raws := make([]listing.RawListing, 0, len(response.ShoppingResults))
	for _, result := range response.ShoppingResults {
		raw := listing.RawListing{
			ID:            result.ProductID,
			Title:         result.Title,
			Price:         result.Price,
			OriginalPrice: result.OldPrice,
			Link:          result.Link,
			Image:         result.Thumbnail,
			Shipping:      result.Delivery,
			Condition:     googleCondition(result.Condition),
			Source:        p.Name(),
		}

		if result.Store != "" || result.Rating > 0 {
			raw.Extra = map[string]interface{}{
				"store":   result.Store,
				"rating":  result.Rating,
				"reviews": result.Reviews,
			}
		}

		raws = append(raws, raw)
	}

	return raws, nil
}

// googleCondition fills in "New" when the result carries no second-hand
// condition, matching how the shopping results omit the field for new items.
func googleCondition(secondHand string) string {
	if secondHand == "" {
		return "New"
	}
	return secondHand
}
