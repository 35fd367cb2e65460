package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/autoxpress/partsearch/app/database"
	"github.com/autoxpress/partsearch/app/listing"
)

const enrichBatchSize = 10

// EnrichFavoriteTask fetches the listing pages of pending favorites and
// stores a readable description for each.
type EnrichFavoriteTask struct {
	Task
	favoriteRepo *database.FavoriteRepository
	httpClient   *http.Client
	extractor    *listing.DescriptionExtractor
	userAgent    string
}

func NewEnrichFavoriteTask(favoriteRepo *database.FavoriteRepository, httpClient *http.Client,
	extractor *listing.DescriptionExtractor, userAgent string) *EnrichFavoriteTask {
	return &EnrichFavoriteTask{
		Task:         NewTask(TaskTypeEnrichFavorite, "pending"),
		favoriteRepo: favoriteRepo,
		httpClient:   httpClient,
		extractor:    extractor,
		userAgent:    userAgent,
	}
}

func (t *EnrichFavoriteTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	favorites, err := t.favoriteRepo.GetPendingDescriptions(enrichBatchSize)
	if err != nil {
		return fmt.Errorf("failed to get favorites pending enrichment: %w", err)
	}

	if len(favorites) == 0 {
		slog.Debug("No favorites need description enrichment")
		return nil
	}

	successCount := 0
	errorCount := 0

	for _, favorite := range favorites {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := t.enrichFavorite(ctx, favorite)
		if err != nil {
			slog.Error("Failed to enrich favorite", "favorite_id", favorite.ID, "url", favorite.Link, "error", err)
			errorCount++

			if updateErr := t.favoriteRepo.UpdateDescription(favorite.ID, "", "failed"); updateErr != nil {
				slog.Error("Failed to update enrichment status", "favorite_id", favorite.ID, "error", updateErr)
			}
		} else {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"success", successCount,
		"errors", errorCount)

	return nil
}

func (t *EnrichFavoriteTask) enrichFavorite(ctx context.Context, favorite database.Favorite) error {
	if favorite.Link == "" || favorite.Link == "#" {
		// Nothing to fetch; mark skipped so it is not retried forever.
		if err := t.favoriteRepo.UpdateDescription(favorite.ID, "", "skipped"); err != nil {
			return fmt.Errorf("failed to mark favorite skipped: %w", err)
		}
		return nil
	}

	data, err := t.fetchListingPage(ctx, favorite.Link)
	if err != nil {
		return fmt.Errorf("failed to fetch listing page: %w", err)
	}

	description, err := t.extractor.Run(data)
	if err != nil {
		return fmt.Errorf("failed to extract description: %w", err)
	}

	if err := t.favoriteRepo.UpdateDescription(favorite.ID, description, "success"); err != nil {
		return fmt.Errorf("failed to store description: %w", err)
	}

	slog.Debug("Favorite enriched successfully", "favorite_id", favorite.ID, "description_length", len(description))
	return nil
}

func (t *EnrichFavoriteTask) fetchListingPage(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
