package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/autoxpress/partsearch/app/database"
	"github.com/autoxpress/partsearch/app/listing"
	"github.com/autoxpress/partsearch/app/ranking"
	"github.com/autoxpress/partsearch/app/sources"
)

// RefreshWatchTask re-runs a saved search and records its price movement.
// A drop below the best price seen so far becomes a watch alert.
type RefreshWatchTask struct {
	Task
	Watch     database.Watch
	searcher  Searcher
	watchRepo *database.WatchRepository
}

func NewRefreshWatchTask(watch database.Watch, searcher Searcher, watchRepo *database.WatchRepository) *RefreshWatchTask {
	return &RefreshWatchTask{
		Task:      NewTask(TaskTypeRefreshWatch, watch.ID),
		Watch:     watch,
		searcher:  searcher,
		watchRepo: watchRepo,
	}
}

func (t *RefreshWatchTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	query := sources.Query{
		Text: t.Watch.QueryText,
		Vehicle: listing.Vehicle{
			Year:  t.Watch.Year,
			Make:  t.Watch.Make,
			Model: t.Watch.Model,
			Part:  t.Watch.Part,
		},
	}

	result, err := t.searcher.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to run watch search: %w", err)
	}

	now := time.Now().UTC()

	cheapest := cheapestListing(result.Listings)
	if cheapest == nil {
		slog.Debug("Watch refresh found no priced listings", "watch_id", t.Watch.ID, "term", query.Term())
		if err := t.watchRepo.UpdateCheckResult(t.Watch.ID, t.Watch.BestPrice, t.Watch.LastPrice, now); err != nil {
			return fmt.Errorf("failed to record watch check: %w", err)
		}
		return nil
	}

	lastPrice := cheapest.Price
	bestPrice := t.Watch.BestPrice

	if bestPrice > 0 && lastPrice < bestPrice {
		alert := database.WatchAlert{
			WatchID:   t.Watch.ID,
			ListingID: cheapest.ID,
			Title:     cheapest.Title,
			OldPrice:  bestPrice,
			NewPrice:  lastPrice,
			Source:    cheapest.Source,
		}
		if _, err := t.watchRepo.InsertAlert(alert); err != nil {
			return fmt.Errorf("failed to insert watch alert: %w", err)
		}
		slog.Info("Price drop detected",
			"watch_id", t.Watch.ID,
			"title", cheapest.Title,
			"old_price", bestPrice,
			"new_price", lastPrice)
	}

	if bestPrice == 0 || lastPrice < bestPrice {
		bestPrice = lastPrice
	}

	if err := t.watchRepo.UpdateCheckResult(t.Watch.ID, bestPrice, lastPrice, now); err != nil {
		return fmt.Errorf("failed to record watch check: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"watch_id", t.Watch.ID,
		"duration", t.GetDuration(),
		"results", result.Total,
		"last_price", lastPrice)

	return nil
}

// cheapestListing picks the lowest positively-priced listing. Zero prices
// come from unparseable price strings and are not real offers.
func cheapestListing(listings []ranking.RankedListing) *ranking.RankedListing {
	var cheapest *ranking.RankedListing
	for i := range listings {
		if listings[i].Price <= 0 {
			continue
		}
		if cheapest == nil || listings[i].Price < cheapest.Price {
			cheapest = &listings[i]
		}
	}
	return cheapest
}
