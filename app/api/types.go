package api

import (
	"context"

	"github.com/autoxpress/partsearch/app/cache"
	"github.com/autoxpress/partsearch/app/chat"
	"github.com/autoxpress/partsearch/app/database"
	"github.com/autoxpress/partsearch/app/search"
	"github.com/autoxpress/partsearch/app/sources"
	"github.com/autoxpress/partsearch/app/tasks"
)

type SearcherInterface interface {
	Search(ctx context.Context, query sources.Query) (*search.Result, error)
	SourceNames() []string
}

var _ SearcherInterface = (*search.Service)(nil)

type Handler struct {
	searcher     SearcherInterface
	favoriteRepo *database.FavoriteRepository
	watchRepo    *database.WatchRepository
	configCache  *sources.ConfigCache
	resultCache  *cache.Cache
	responder    *chat.Responder
	scheduler    tasks.TaskSchedulerInterface
}

// SearchRequest binds the vehicle descriptor query parameters of the
// search endpoint. All fields are optional but at least one must be set.
type SearchRequest struct {
	Year  string `form:"year"`
	Make  string `form:"make"`
	Model string `form:"model"`
	Part  string `form:"part"`
	Query string `form:"q"`
}

// FavoriteRequest is the payload for saving a listing.
type FavoriteRequest struct {
	ListingID string  `json:"listingId" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Brand     string  `json:"brand"`
	PartType  string  `json:"partType"`
	Condition string  `json:"condition"`
	Price     float64 `json:"price"`
	Shipping  string  `json:"shipping"`
	Image     string  `json:"image"`
	Link      string  `json:"link"`
	Source    string  `json:"source"`
}

// WatchRequest is the payload for creating a price watch.
type WatchRequest struct {
	Year      string `json:"year"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Part      string `json:"part"`
	QueryText string `json:"q"`
}

// ChatRequest is one chat-widget message.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}
