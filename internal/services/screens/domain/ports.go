package domain

import (
	"context"

	"inkverse/internal/core/dispatch"
)

// LoaderPort is the set of screen loaders
// Loaders never return errors; every outcome is delivered through the dispatch
type LoaderPort interface {
	LoadHomeFeed(ctx context.Context, p HomeFeedParams, d dispatch.Dispatch[HomeFeed])
	LoadComicSeries(ctx context.Context, p ComicSeriesParams, d dispatch.Dispatch[ComicSeriesPayload])
	LoadComicSeriesURL(ctx context.Context, p ComicSeriesURLParams, d dispatch.Dispatch[ComicSeriesPayload])
	LoadComicIssue(ctx context.Context, p ComicIssueParams, d dispatch.Dispatch[ComicIssuePayload])
	LoadComicIssueURL(ctx context.Context, p ComicIssueURLParams, d dispatch.Dispatch[ComicIssuePayload])
	LoadCreator(ctx context.Context, p CreatorParams, d dispatch.Dispatch[CreatorPayload])
	LoadCreatorURL(ctx context.Context, p CreatorURLParams, d dispatch.Dispatch[CreatorPayload])
	LoadList(ctx context.Context, p ListParams, d dispatch.Dispatch[ListPayload])
	FetchComics(ctx context.Context, p ComicsListParams, d dispatch.Dispatch[ComicsListPayload])
	Search(ctx context.Context, p SearchParams, d dispatch.Dispatch[SearchPayload])
}
