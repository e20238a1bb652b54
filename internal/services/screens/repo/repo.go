// Package repo provides GraphQL access for the screen loaders
package repo

import (
	"context"

	"inkverse/internal/adapters/graphql"
	"inkverse/internal/modkit/repokit"
	perr "inkverse/internal/platform/errors"
	"inkverse/internal/services/screens/domain"
)

// Repo defines the repository contract for screens
// Every method takes the fetch policy the loader picked for this load
type Repo interface {
	HomeScreen(ctx context.Context, policy graphql.FetchPolicy) (domain.HomeFeed, error)
	ComicSeries(ctx context.Context, key SeriesKey, policy graphql.FetchPolicy) (domain.ComicSeriesPayload, error)
	ComicIssue(ctx context.Context, key IssueKey, policy graphql.FetchPolicy) (domain.ComicIssue, error)
	Creator(ctx context.Context, key CreatorKey, policy graphql.FetchPolicy) (domain.CreatorPayload, error)
	List(ctx context.Context, id string, policy graphql.FetchPolicy) (domain.List, error)
	Search(ctx context.Context, f Filter, policy graphql.FetchPolicy) (domain.SearchPayload, error)
}

// SeriesKey selects a series by uuid or, when UUID is empty, by short URL
type SeriesKey struct {
	UUID     string
	ShortURL string
}

// IssueKey selects an issue by uuid or by series short URL and episode id
type IssueKey struct {
	UUID      string
	ShortURL  string
	EpisodeID string
}

// CreatorKey selects a creator by uuid or by short URL
type CreatorKey struct {
	UUID     string
	ShortURL string
}

// Filter is one page of search or filtered browse
type Filter struct {
	Term         string
	Page         int
	LimitPerPage int
	Types        []string
	Tags         []string
	Genres       []string
}

type (
	// GQL implements the Repo interface over a GraphQL Queryer
	GQL struct{}

	// queries holds the query methods
	queries struct{ q repokit.Queryer }
)

// NewGQL creates a new GraphQL repository binder
func NewGQL() repokit.Binder[Repo] { return GQL{} }

// Bind binds a queryer to the Repo implementation
func (GQL) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

type seriesRow struct {
	domain.ComicSeries
	Issues []domain.ComicIssue `json:"issues"`
}

type creatorRow struct {
	domain.Creator
	ComicSeries []domain.ComicSeries `json:"comicseries"`
}

func (r *queries) HomeScreen(ctx context.Context, policy graphql.FetchPolicy) (domain.HomeFeed, error) {
	res, err := repokit.Query[struct {
		Home *domain.HomeFeed `json:"getHomeScreen"`
	}](ctx, r.q, graphql.Operation{Name: opHomeScreen, Query: queryHomeScreen, Policy: policy})
	if err != nil {
		return domain.HomeFeed{}, err
	}
	if res.Home == nil {
		return domain.HomeFeed{}, perr.NotFoundf("home screen not found")
	}
	return *res.Home, nil
}

func (r *queries) ComicSeries(ctx context.Context, key SeriesKey, policy graphql.FetchPolicy) (domain.ComicSeriesPayload, error) {
	vars, label := pick("uuid", key.UUID, "shortUrl", key.ShortURL)
	if vars == nil {
		return domain.ComicSeriesPayload{}, perr.InvalidArgf("comic series needs a uuid or a short url")
	}
	res, err := repokit.Query[struct {
		Series *seriesRow `json:"getComicSeries"`
	}](ctx, r.q, graphql.Operation{Name: opComicSeries, Query: queryComicSeries, Variables: vars, Policy: policy})
	if err != nil {
		return domain.ComicSeriesPayload{}, err
	}
	if res.Series == nil {
		return domain.ComicSeriesPayload{}, perr.NotFoundf("comic series %s not found", label)
	}
	series := res.Series.ComicSeries
	issues := res.Series.Issues
	if issues == nil {
		issues = []domain.ComicIssue{}
	}
	return domain.ComicSeriesPayload{ComicSeries: &series, Issues: issues}, nil
}

func (r *queries) ComicIssue(ctx context.Context, key IssueKey, policy graphql.FetchPolicy) (domain.ComicIssue, error) {
	var vars map[string]any
	label := key.UUID
	switch {
	case key.UUID != "":
		vars = map[string]any{"uuid": key.UUID}
	case key.ShortURL != "" && key.EpisodeID != "":
		vars = map[string]any{"shortUrl": key.ShortURL, "episodeId": key.EpisodeID}
		label = key.ShortURL + "/" + key.EpisodeID
	default:
		return domain.ComicIssue{}, perr.InvalidArgf("comic issue needs a uuid or a short url and episode id")
	}
	res, err := repokit.Query[struct {
		Issue *domain.ComicIssue `json:"getComicIssue"`
	}](ctx, r.q, graphql.Operation{Name: opComicIssue, Query: queryComicIssue, Variables: vars, Policy: policy})
	if err != nil {
		return domain.ComicIssue{}, err
	}
	if res.Issue == nil {
		return domain.ComicIssue{}, perr.NotFoundf("comic issue %s not found", label)
	}
	return *res.Issue, nil
}

func (r *queries) Creator(ctx context.Context, key CreatorKey, policy graphql.FetchPolicy) (domain.CreatorPayload, error) {
	vars, label := pick("uuid", key.UUID, "shortUrl", key.ShortURL)
	if vars == nil {
		return domain.CreatorPayload{}, perr.InvalidArgf("creator needs a uuid or a short url")
	}
	res, err := repokit.Query[struct {
		Creator *creatorRow `json:"getCreator"`
	}](ctx, r.q, graphql.Operation{Name: opCreator, Query: queryCreator, Variables: vars, Policy: policy})
	if err != nil {
		return domain.CreatorPayload{}, err
	}
	if res.Creator == nil {
		return domain.CreatorPayload{}, perr.NotFoundf("creator %s not found", label)
	}
	c := res.Creator.Creator
	series := res.Creator.ComicSeries
	if series == nil {
		series = []domain.ComicSeries{}
	}
	return domain.CreatorPayload{Creator: &c, ComicSeries: series}, nil
}

func (r *queries) List(ctx context.Context, id string, policy graphql.FetchPolicy) (domain.List, error) {
	if id == "" {
		return domain.List{}, perr.InvalidArgf("list needs an id")
	}
	res, err := repokit.Query[struct {
		List *domain.List `json:"getList"`
	}](ctx, r.q, graphql.Operation{
		Name:      opList,
		Query:     queryList,
		Variables: map[string]any{"id": id},
		Policy:    policy,
	})
	if err != nil {
		return domain.List{}, err
	}
	if res.List == nil {
		return domain.List{}, perr.NotFoundf("list %s not found", id)
	}
	return *res.List, nil
}

func (r *queries) Search(ctx context.Context, f Filter, policy graphql.FetchPolicy) (domain.SearchPayload, error) {
	vars := map[string]any{}
	if f.Term != "" {
		vars["term"] = f.Term
	}
	if f.Page > 0 {
		vars["page"] = f.Page
	}
	if f.LimitPerPage > 0 {
		vars["limitPerPage"] = f.LimitPerPage
	}
	if len(f.Types) > 0 {
		vars["filterForTypes"] = f.Types
	}
	if len(f.Tags) > 0 {
		vars["filterForTags"] = f.Tags
	}
	if len(f.Genres) > 0 {
		vars["filterForGenres"] = f.Genres
	}

	res, err := repokit.Query[struct {
		Search *domain.SearchPayload `json:"search"`
	}](ctx, r.q, graphql.Operation{Name: opSearch, Query: querySearch, Variables: vars, Policy: policy})
	if err != nil {
		return domain.SearchPayload{}, err
	}
	// no results is an empty page, not a missing resource
	if res.Search == nil {
		return domain.SearchPayload{ComicSeries: []domain.ComicSeries{}, Creators: []domain.Creator{}}, nil
	}
	out := *res.Search
	if out.ComicSeries == nil {
		out.ComicSeries = []domain.ComicSeries{}
	}
	if out.Creators == nil {
		out.Creators = []domain.Creator{}
	}
	return out, nil
}

// pick prefers the first non-empty identifier
func pick(k1, v1, k2, v2 string) (map[string]any, string) {
	switch {
	case v1 != "":
		return map[string]any{k1: v1}, v1
	case v2 != "":
		return map[string]any{k2: v2}, v2
	}
	return nil, ""
}
