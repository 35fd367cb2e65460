package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/autoxpress/partsearch/app/listing"
)

// EbayProvider speaks the Browse-API-shaped JSON the search endpoint returns:
// a top-level itemSummaries array with nested price/image/seller objects.
type EbayProvider struct {
	providerBase
}

type ebayResponse struct {
	ItemSummaries []ebayItemSummary `json:"itemSummaries"`
}

type ebayItemSummary struct {
	ItemID     string `json:"itemId"`
	Title      string `json:"title"`
	Condition  string `json:"condition"`
	ItemWebURL string `json:"itemWebUrl"`
	Price      *ebayAmount `json:"price"`
	Image      *struct {
		ImageURL string `json:"imageUrl"`
	} `json:"image"`
	Seller *struct {
		Username           string `json:"username"`
		FeedbackScore      int    `json:"feedbackScore"`
		FeedbackPercentage string `json:"feedbackPercentage"`
	} `json:"seller"`
	ShippingOptions []struct {
		ShippingCostType string      `json:"shippingCostType"`
		ShippingCost     *ebayAmount `json:"shippingCost"`
	} `json:"shippingOptions"`
}

type ebayAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

func (p *EbayProvider) Search(ctx context.Context, query Query) ([]listing.RawListing, error) {
	searchURL := fmt.Sprintf("%s?q=%s&limit=%d",
		p.config.Source.URL, url.QueryEscape(query.Term()), p.limit(query))

	data, err := p.fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var response ebayResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse eBay response: %w", err)
	}

	raws := make([]listing.RawListing, 0, len(response.ItemSummaries))
	for _, item := range response.ItemSummaries {
		raws = append(raws, p.toRawListing(item))
	}

	return raws, nil
}

func (p *EbayProvider) toRawListing(item ebayItemSummary) listing.RawListing {
	raw := listing.RawListing{
		ID:        item.ItemID,
		Title:     item.Title,
		Condition: item.Condition,
		Link:      item.ItemWebURL,
		Source:    p.Name(),
	}

	if item.Price != nil {
		raw.Price = item.Price.Value
	}
	if item.Image != nil {
		raw.Image = item.Image.ImageURL
	}

	raw.Shipping = p.shippingLabel(item)

	if item.Seller != nil {
		raw.Extra = map[string]interface{}{
			"sellerUsername": item.Seller.Username,
			"sellerFeedback": item.Seller.FeedbackScore,
		}
	}

	return raw
}

func (p *EbayProvider) shippingLabel(item ebayItemSummary) string {
	if len(item.ShippingOptions) == 0 {
		return ""
	}

	option := item.ShippingOptions[0]
	if option.ShippingCostType == "FREE" {
		return "Free Shipping"
	}
	if option.ShippingCost != nil {
		if cost, err := strconv.ParseFloat(option.ShippingCost.Value, 64); err == nil {
			if cost == 0 {
				return "Free Shipping"
			}
			return fmt.Sprintf("$%.2f Shipping", cost)
		}
	}

	return ""
}
