package service

import (
	"context"

	"inkverse/internal/core/dispatch"
	"inkverse/internal/services/screens/domain"
)

// Per-screen reducers
// Only the paged screens merge; the rest replace their data on every success
var (
	HomeFeedReducer    = dispatch.NewReducer[domain.HomeFeed](nil)
	ComicSeriesReducer = dispatch.NewReducer[domain.ComicSeriesPayload](nil)
	ComicIssueReducer  = dispatch.NewReducer[domain.ComicIssuePayload](nil)
	CreatorReducer     = dispatch.NewReducer[domain.CreatorPayload](nil)
	ListReducer        = dispatch.NewReducer[domain.ListPayload](nil)
	ComicsListReducer  = dispatch.NewReducer[domain.ComicsListPayload](MergeComics)
	SearchReducer      = dispatch.NewReducer[domain.SearchPayload](MergeSearch)
)

// MergeComics appends a further page; duplicates are kept
func MergeComics(existing, next domain.ComicsListPayload) domain.ComicsListPayload {
	return domain.ComicsListPayload{Comics: concat(existing.Comics, next.Comics)}
}

// MergeSearch appends a further page of both result kinds
func MergeSearch(existing, next domain.SearchPayload) domain.SearchPayload {
	return domain.SearchPayload{
		ComicSeries: concat(existing.ComicSeries, next.ComicSeries),
		Creators:    concat(existing.Creators, next.Creators),
	}
}

// concat never aliases either input
func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// NewHomeFeedStore returns a store for the home screen
func NewHomeFeedStore(ctx context.Context) *dispatch.Store[domain.HomeFeed] {
	return dispatch.NewStore(ctx, HomeFeedReducer)
}

// NewComicSeriesStore returns a store for the series screen
func NewComicSeriesStore(ctx context.Context) *dispatch.Store[domain.ComicSeriesPayload] {
	return dispatch.NewStore(ctx, ComicSeriesReducer)
}

// NewComicIssueStore returns a store for the reader screen
func NewComicIssueStore(ctx context.Context) *dispatch.Store[domain.ComicIssuePayload] {
	return dispatch.NewStore(ctx, ComicIssueReducer)
}

// NewCreatorStore returns a store for the creator screen
func NewCreatorStore(ctx context.Context) *dispatch.Store[domain.CreatorPayload] {
	return dispatch.NewStore(ctx, CreatorReducer)
}

// NewListStore returns a store for the list screen
func NewListStore(ctx context.Context) *dispatch.Store[domain.ListPayload] {
	return dispatch.NewStore(ctx, ListReducer)
}

// NewComicsListStore returns a store for the browse screen
func NewComicsListStore(ctx context.Context) *dispatch.Store[domain.ComicsListPayload] {
	return dispatch.NewStore(ctx, ComicsListReducer)
}

// NewSearchStore returns a store for the search screen
func NewSearchStore(ctx context.Context) *dispatch.Store[domain.SearchPayload] {
	return dispatch.NewStore(ctx, SearchReducer)
}
