package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/autoxpress/partsearch/app/cache"
	"github.com/autoxpress/partsearch/app/chat"
	"github.com/autoxpress/partsearch/app/database"
	"github.com/autoxpress/partsearch/app/listing"
	"github.com/autoxpress/partsearch/app/sources"
	"github.com/autoxpress/partsearch/app/tasks"
	"github.com/autoxpress/partsearch/app/vin"
)

func NewHandler(searcher SearcherInterface, favoriteRepo *database.FavoriteRepository,
	watchRepo *database.WatchRepository, configCache *sources.ConfigCache,
	resultCache *cache.Cache, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		searcher:     searcher,
		favoriteRepo: favoriteRepo,
		watchRepo:    watchRepo,
		configCache:  configCache,
		resultCache:  resultCache,
		responder:    chat.NewResponder(),
		scheduler:    scheduler,
	}
}

func (h *Handler) SearchProducts(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	query := sources.Query{
		Text: req.Query,
		Vehicle: listing.Vehicle{
			Year:  req.Year,
			Make:  req.Make,
			Model: req.Model,
			Part:  req.Part,
		},
	}

	if query.Term() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide at least one of year, make, model, part or q"})
		return
	}

	result, err := h.searcher.Search(c.Request.Context(), query)
	if err != nil {
		slog.Error("Search failed", "term", query.Term(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) AddFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listingId and title are required"})
		return
	}

	id, err := h.favoriteRepo.Add(database.Favorite{
		ListingID: req.ListingID,
		Title:     req.Title,
		Brand:     req.Brand,
		PartType:  req.PartType,
		Condition: req.Condition,
		Price:     req.Price,
		Shipping:  req.Shipping,
		Image:     req.Image,
		Link:      req.Link,
		Source:    req.Source,
	})
	if err != nil {
		slog.Error("Database error", "operation", "add_favorite", "listing_id", req.ListingID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "listingId": req.ListingID})
}

func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, err := h.favoriteRepo.List()
	if err != nil {
		slog.Error("Database error", "operation", "list_favorites", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"total":     len(favorites),
	})
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	listingID := c.Param("listingId")

	removed, err := h.favoriteRepo.Remove(listingID)
	if err != nil {
		slog.Error("Database error", "operation", "remove_favorite", "listing_id", listingID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": listingID})
}

func (h *Handler) AddWatch(c *gin.Context) {
	var req WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid watch payload"})
		return
	}

	if req.Year == "" && req.Make == "" && req.Model == "" && req.Part == "" && req.QueryText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Watch must describe a vehicle or a query"})
		return
	}

	id, err := h.watchRepo.Add(database.Watch{
		Year:      req.Year,
		Make:      req.Make,
		Model:     req.Model,
		Part:      req.Part,
		QueryText: req.QueryText,
	})
	if err != nil {
		slog.Error("Database error", "operation", "add_watch", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) ListWatches(c *gin.Context) {
	watches, err := h.watchRepo.List()
	if err != nil {
		slog.Error("Database error", "operation", "list_watches", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"watches": watches,
		"total":   len(watches),
	})
}

func (h *Handler) ListWatchAlerts(c *gin.Context) {
	id := c.Param("id")

	watch, err := h.watchRepo.Get(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_watch", "watch_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if watch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Watch not found"})
		return
	}

	alerts, err := h.watchRepo.ListAlerts(id)
	if err != nil {
		slog.Error("Database error", "operation", "list_alerts", "watch_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"watch":  watch,
		"alerts": alerts,
		"total":  len(alerts),
	})
}

func (h *Handler) DeleteWatch(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.watchRepo.Delete(id)
	if err != nil {
		slog.Error("Database error", "operation", "delete_watch", "watch_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Watch not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) DecodeVIN(c *gin.Context) {
	raw := strings.TrimSpace(c.Param("vin"))

	decoded, err := vin.Decode(raw)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Invalid VIN",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, decoded)
}

func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply := h.responder.Run(req.Message)
	c.JSON(http.StatusOK, reply)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if favoriteCount, err := h.favoriteRepo.Count(); err == nil {
		health["favorites"] = favoriteCount
	}
	if watchCount, err := h.watchRepo.Count(); err == nil {
		health["watches"] = watchCount
	}

	health["loaded_sources"] = h.configCache.GetConfigCount()
	health["cache"] = h.resultCache.Health(c.Request.Context())

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	sourcesInfo := make([]map[string]interface{}, 0, len(configs))
	for _, config := range configs {
		sourcesInfo = append(sourcesInfo, map[string]interface{}{
			"id":          config.ID,
			"name":        config.Source.Name,
			"kind":        config.Source.Kind,
			"enabled":     config.Settings.Enabled,
			"timeout":     (time.Duration(config.Settings.Timeout) * time.Second).String(),
			"max_results": config.Settings.MaxResults,
		})
	}

	stats := map[string]interface{}{
		"sources":          sourcesInfo,
		"active_providers": h.searcher.SourceNames(),
	}

	if favoriteCount, err := h.favoriteRepo.Count(); err == nil {
		stats["favorites"] = favoriteCount
	}
	if watchCount, err := h.watchRepo.Count(); err == nil {
		stats["watches"] = watchCount
	}

	c.JSON(http.StatusOK, stats)
}

// AdminRefreshWatch enqueues an immediate refresh for one watch, bypassing
// the scheduler's interval.
func (h *Handler) AdminRefreshWatch(c *gin.Context) {
	id := c.Param("id")

	watch, err := h.watchRepo.Get(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_watch", "watch_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if watch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Watch not found"})
		return
	}

	searcher, ok := h.searcher.(tasks.Searcher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search service unavailable"})
		return
	}

	task := tasks.NewRefreshWatchTask(*watch, searcher, h.watchRepo)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing refresh task", "watch_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue refresh task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}
