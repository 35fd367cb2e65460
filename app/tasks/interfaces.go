package tasks

import (
	"context"

	"github.com/autoxpress/partsearch/app/search"
	"github.com/autoxpress/partsearch/app/sources"
)

// Searcher runs one search through the full provider/ranking pipeline.
// Satisfied by *search.Service.
type Searcher interface {
	Search(ctx context.Context, query sources.Query) (*search.Result, error)
}

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
// Example usage:
//
//	scheduler := NewScheduler(searcher, watchRepo, favoriteRepo, httpClient, extractor)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewRefreshWatchTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
