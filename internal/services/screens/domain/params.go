package domain

import "inkverse/internal/adapters/graphql"

// Request holds the options every loader accepts
// A nil Client selects the public client
type Request struct {
	Client        graphql.Querier `json:"-" validate:"-"`
	ForceRefresh  bool            `json:"forceRefresh,omitempty"`
	IsLoadingMore bool            `json:"isLoadingMore,omitempty"`
}

// HomeFeedParams loads the home screen
type HomeFeedParams struct {
	Request
}

// ComicSeriesParams loads a series by uuid
type ComicSeriesParams struct {
	Request
	UUID string
}

// ComicSeriesURLParams loads a series by its short URL
type ComicSeriesURLParams struct {
	Request
	ShortURL string
}

// ComicIssueParams loads an issue and its series by uuid
// SeriesUUID may be empty, in which case it is read from the issue first
type ComicIssueParams struct {
	Request
	IssueUUID  string
	SeriesUUID string
}

// ComicIssueURLParams loads an issue by its series short URL and episode id
type ComicIssueURLParams struct {
	Request
	ShortURL  string
	EpisodeID string
}

// CreatorParams loads a creator by uuid
type CreatorParams struct {
	Request
	UUID string
}

// CreatorURLParams loads a creator by short URL
type CreatorURLParams struct {
	Request
	ShortURL string
}

// ListParams loads a curated list; ID may be a deep-link slug
type ListParams struct {
	Request
	ID string
}

// ComicsListParams loads one page of the filtered browse screen
// Tags and genres are alternatives; set one of them
type ComicsListParams struct {
	Request
	Page            int
	LimitPerPage    int
	FilterForTypes  []string
	FilterForTags   []string
	FilterForGenres []string
}

// SearchParams loads one page of search results
type SearchParams struct {
	Request
	Term           string
	Page           int
	LimitPerPage   int
	FilterForTypes []string
}
