package service

import (
	"context"

	"inkverse/internal/adapters/graphql"
	"inkverse/internal/core/dispatch"
	"inkverse/internal/core/normalize"
	perr "inkverse/internal/platform/errors"
	"inkverse/internal/services/screens/domain"
	"inkverse/internal/services/screens/repo"

	"golang.org/x/sync/errgroup"
)

// Screen names used in logs
const (
	ScreenHome        = "home"
	ScreenComicSeries = "comicseries"
	ScreenComicIssue  = "comicissue"
	ScreenCreator     = "creator"
	ScreenList        = "list"
	ScreenComics      = "comics"
	ScreenSearch      = "search"
)

// defaultFilterTypes is what the browse screen asks for when nothing is set
var defaultFilterTypes = []string{"COMICSERIES"}

// LoadHomeFeed loads the home screen
func (s *Svc) LoadHomeFeed(ctx context.Context, p domain.HomeFeedParams, d dispatch.Dispatch[domain.HomeFeed]) {
	run(ctx, s, ScreenHome, p.Request, d, func(ctx context.Context, r repo.Repo, policy graphql.FetchPolicy) (domain.HomeFeed, page, error) {
		home, err := r.HomeScreen(ctx, policy)
		return home, page{}, err
	})
}

// LoadComicSeries loads a series and its issues by uuid
func (s *Svc) LoadComicSeries(ctx context.Context, p domain.ComicSeriesParams, d dispatch.Dispatch[domain.ComicSeriesPayload]) {
	s.loadComicSeries(ctx, p.Request, repo.SeriesKey{UUID: p.UUID}, d)
}

// LoadComicSeriesURL loads a series and its issues by short URL
func (s *Svc) LoadComicSeriesURL(ctx context.Context, p domain.ComicSeriesURLParams, d dispatch.Dispatch[domain.ComicSeriesPayload]) {
	s.loadComicSeries(ctx, p.Request, repo.SeriesKey{ShortURL: p.ShortURL}, d)
}

func (s *Svc) loadComicSeries(ctx context.Context, req domain.Request, key repo.SeriesKey, d dispatch.Dispatch[domain.ComicSeriesPayload]) {
	run(ctx, s, ScreenComicSeries, req, d, func(ctx context.Context, r repo.Repo, policy graphql.FetchPolicy) (domain.ComicSeriesPayload, page, error) {
		out, err := r.ComicSeries(ctx, key, policy)
		return out, page{}, err
	})
}

// LoadComicIssue loads an issue together with its series and sibling issues
// With a series uuid both queries run concurrently; without one the issue is read first
func (s *Svc) LoadComicIssue(ctx context.Context, p domain.ComicIssueParams, d dispatch.Dispatch[domain.ComicIssuePayload]) {
	run(ctx, s, ScreenComicIssue, p.Request, d, func(ctx context.Context, r repo.Repo, policy graphql.FetchPolicy) (domain.ComicIssuePayload, page, error) {
		issueKey := repo.IssueKey{UUID: p.IssueUUID}
		if p.SeriesUUID == "" {
			issue, err := r.ComicIssue(ctx, issueKey, policy)
			if err != nil {
				return domain.ComicIssuePayload{}, page{}, err
			}
			if issue.SeriesUUID == "" {
				return domain.ComicIssuePayload{}, page{}, perr.NotFoundf("comic issue %s has no series", p.IssueUUID)
			}
			series, err := r.ComicSeries(ctx, repo.SeriesKey{UUID: issue.SeriesUUID}, policy)
			if err != nil {
				return domain.ComicIssuePayload{}, page{}, err
			}
			return issuePayload(issue, series), page{}, nil
		}
		out, err := issueAndSeries(ctx, r, issueKey, repo.SeriesKey{UUID: p.SeriesUUID}, policy)
		return out, page{}, err
	})
}

// LoadComicIssueURL loads an issue by its series short URL and episode id
func (s *Svc) LoadComicIssueURL(ctx context.Context, p domain.ComicIssueURLParams, d dispatch.Dispatch[domain.ComicIssuePayload]) {
	run(ctx, s, ScreenComicIssue, p.Request, d, func(ctx context.Context, r repo.Repo, policy graphql.FetchPolicy) (domain.ComicIssuePayload, page, error) {
		out, err := issueAndSeries(ctx, r,
			repo.IssueKey{ShortURL: p.ShortURL, EpisodeID: p.EpisodeID},
			repo.SeriesKey{ShortURL: p.ShortURL},
			policy)
		return out, page{}, err
	})
}

// issueAndSeries runs both queries concurrently; the first failure cancels the other
func issueAndSeries(ctx context.Context, r repo.Repo, ik repo.IssueKey, sk repo.SeriesKey, policy graphql.FetchPolicy) (domain.ComicIssuePayload, error) {
	var (
		issue  domain.ComicIssue
		series domain.ComicSeriesPayload
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(func() (err error) {
		issue, err = r.ComicIssue(gctx, ik, policy)
		return err
	}))
	g.Go(guard(func() (err error) {
		series, err = r.ComicSeries(gctx, sk, policy)
		return err
	}))
	if err := g.Wait(); err != nil {
		return domain.ComicIssuePayload{}, err
	}
	return issuePayload(issue, series), nil
}

// guard turns a panic on an errgroup goroutine into an error
func guard(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = perr.PanicErrf("concurrent query: %v", r)
			}
		}()
		return fn()
	}
}

func issuePayload(issue domain.ComicIssue, series domain.ComicSeriesPayload) domain.ComicIssuePayload {
	return domain.ComicIssuePayload{
		ComicIssue:  &issue,
		ComicSeries: series.ComicSeries,
		AllIssues:   series.Issues,
	}
}

// LoadCreator loads a creator and their series by uuid
func (s *Svc) LoadCreator(ctx context.Context, p domain.CreatorParams, d dispatch.Dispatch[domain.CreatorPayload]) {
	s.loadCreator(ctx, p.Request, repo.CreatorKey{UUID: p.UUID}, d)
}

// LoadCreatorURL loads a creator and their series by short URL
func (s *Svc) LoadCreatorURL(ctx context.Context, p domain.CreatorURLParams, d dispatch.Dispatch[domain.CreatorPayload]) {
	s.loadCreator(ctx, p.Request, repo.CreatorKey{ShortURL: p.ShortURL}, d)
}

func (s *Svc) loadCreator(ctx context.Context, req domain.Request, key repo.CreatorKey, d dispatch.Dispatch[domain.CreatorPayload]) {
	run(ctx, s, ScreenCreator, req, d, func(ctx context.Context, r repo.Repo, policy graphql.FetchPolicy) (domain.CreatorPayload, page, error) {
		out, err := r.Creator(ctx, key, policy)
		return out, page{}, err
	})
}

// LoadList loads a curated list; deep-link slugs such as id9-lgbt are accepted
func (s *Svc) LoadList(ctx context.Context, p domain.ListParams, d dispatch.Dispatch[domain.ListPayload]) {
	run(ctx, s, ScreenList, p.Request, d, func(ctx context.Context, r repo.Repo, policy graphql.FetchPolicy) (domain.ListPayload, page, error) {
		id, ok := domain.ParseListID(p.ID)
		if !ok {
			return domain.ListPayload{}, page{}, perr.NotFoundf("list %q not found", p.ID)
		}
		list, err := r.List(ctx, id, policy)
		if err != nil {
			return domain.ListPayload{}, page{}, err
		}
		return domain.ListPayload{List: &list}, page{}, nil
	})
}

// FetchComics loads one page of the filtered browse screen
// With IsLoadingMore set the page is appended to what the screen already has
func (s *Svc) FetchComics(ctx context.Context, p domain.ComicsListParams, d dispatch.Dispatch[domain.ComicsListPayload]) {
	run(ctx, s, ScreenComics, p.Request, d, func(ctx context.Context, r repo.Repo, policy graphql.FetchPolicy) (domain.ComicsListPayload, page, error) {
		pg := s.pageOf(p.Page, p.LimitPerPage)
		types := p.FilterForTypes
		if len(types) == 0 {
			types = defaultFilterTypes
		}
		res, err := r.Search(ctx, repo.Filter{
			Page:         pg.number,
			LimitPerPage: pg.size,
			Types:        types,
			Tags:         p.FilterForTags,
			Genres:       p.FilterForGenres,
		}, policy)
		if err != nil {
			return domain.ComicsListPayload{}, pg, err
		}
		pg.count = len(res.ComicSeries)
		return domain.ComicsListPayload{Comics: res.ComicSeries}, pg, nil
	})
}

// Search loads one page of search results for a normalized term
// An empty term clears the results without touching the network
func (s *Svc) Search(ctx context.Context, p domain.SearchParams, d dispatch.Dispatch[domain.SearchPayload]) {
	run(ctx, s, ScreenSearch, p.Request, d, func(ctx context.Context, r repo.Repo, policy graphql.FetchPolicy) (domain.SearchPayload, page, error) {
		pg := s.pageOf(p.Page, p.LimitPerPage)
		term := normalize.Term(p.Term)
		if term == "" {
			return domain.SearchPayload{ComicSeries: []domain.ComicSeries{}, Creators: []domain.Creator{}}, page{number: 1}, nil
		}
		res, err := r.Search(ctx, repo.Filter{
			Term:         term,
			Page:         pg.number,
			LimitPerPage: pg.size,
			Types:        p.FilterForTypes,
		}, policy)
		if err != nil {
			return domain.SearchPayload{}, pg, err
		}
		// each kind pages on its own; the page is full if either kind filled it
		pg.count = max(len(res.ComicSeries), len(res.Creators))
		return res, pg, nil
	})
}

func (s *Svc) pageOf(number, size int) page {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = s.cfg.PageSize
	}
	return page{number: number, size: size}
}
