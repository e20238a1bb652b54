package service

import (
	"context"
	"sync"
	"time"

	"inkverse/internal/core/dispatch"
	"inkverse/internal/services/screens/domain"
)

// DebouncedSearch has the Search loader's shape but only runs the last
// call made within the delay
type DebouncedSearch struct {
	svc *Svc
	db  *dispatch.Debouncer[domain.SearchPayload]
}

// NewDebouncedSearch wraps svc.Search; delay <= 0 uses the configured debounce
func (s *Svc) NewDebouncedSearch(delay time.Duration) *DebouncedSearch {
	if delay <= 0 {
		delay = s.cfg.SearchDebounce
	}
	return &DebouncedSearch{svc: s, db: dispatch.NewDebouncer[domain.SearchPayload](delay)}
}

// Search reports loading through d at once and schedules the query
func (ds *DebouncedSearch) Search(ctx context.Context, p domain.SearchParams, d dispatch.Dispatch[domain.SearchPayload]) {
	ds.db.Call(d, func(d dispatch.Dispatch[domain.SearchPayload]) {
		ds.svc.Search(ctx, p, d)
	})
}

// Stop drops the pending search and every later call
func (ds *DebouncedSearch) Stop() { ds.db.Stop() }

// ComicsList is one mounted browse screen with its paging cursor
type ComicsList struct {
	svc    *Svc
	store  *dispatch.Store[domain.ComicsListPayload]
	params domain.ComicsListParams

	mu sync.Mutex
}

// NewComicsList mounts a browse screen for the given filters
func (s *Svc) NewComicsList(ctx context.Context, p domain.ComicsListParams) *ComicsList {
	return &ComicsList{svc: s, store: NewComicsListStore(ctx), params: p}
}

// Store exposes the screen state
func (c *ComicsList) Store() *dispatch.Store[domain.ComicsListPayload] { return c.store }

// Load fetches the first page, replacing whatever is shown
func (c *ComicsList) Load(forceRefresh bool) {
	c.mu.Lock()
	d := c.store.Bind()
	p := c.params
	c.mu.Unlock()

	p.Page = 1
	p.ForceRefresh = forceRefresh
	p.IsLoadingMore = false
	c.svc.FetchComics(c.store.Context(), p, d)
}

// LoadMore fetches the next page
// It is a no-op, returning false, while a load runs or once the list is exhausted.
// Loading is reported under the lock so a concurrent LoadMore sees it and
// backs off; the loader's own loading action is then dropped.
func (c *ComicsList) LoadMore() bool {
	c.mu.Lock()
	st := c.store.State()
	if !st.CanLoadMore() {
		c.mu.Unlock()
		return false
	}
	d := c.store.Bind()
	d(dispatch.Loading[domain.ComicsListPayload](true))
	p := c.params
	c.mu.Unlock()

	p.Page = st.Page + 1
	p.ForceRefresh = false
	p.IsLoadingMore = true
	c.svc.FetchComics(c.store.Context(), p, withoutLoading(d))
	return true
}

// Close unmounts the screen
func (c *ComicsList) Close() { c.store.Close() }

// SearchSession is one mounted search screen fed by keystrokes
type SearchSession struct {
	svc    *Svc
	store  *dispatch.Store[domain.SearchPayload]
	search *DebouncedSearch
	types  []string

	mu   sync.Mutex
	term string
}

// NewSearchSession mounts a search screen; types narrows the result kinds
func (s *Svc) NewSearchSession(ctx context.Context, types ...string) *SearchSession {
	return &SearchSession{
		svc:    s,
		store:  NewSearchStore(ctx),
		search: s.NewDebouncedSearch(0),
		types:  types,
	}
}

// Store exposes the screen state
func (ss *SearchSession) Store() *dispatch.Store[domain.SearchPayload] { return ss.store }

// Type records the current term and schedules a debounced first-page search
func (ss *SearchSession) Type(term string) {
	ss.mu.Lock()
	ss.term = term
	d := ss.store.Bind()
	ss.mu.Unlock()

	ss.search.Search(ss.store.Context(), domain.SearchParams{
		Term:           term,
		Page:           1,
		FilterForTypes: ss.types,
	}, d)
}

// LoadMore fetches the next page of the current term right away
// Like ComicsList.LoadMore it reports loading itself before the query starts
func (ss *SearchSession) LoadMore() bool {
	ss.mu.Lock()
	st := ss.store.State()
	if !st.CanLoadMore() {
		ss.mu.Unlock()
		return false
	}
	d := ss.store.Bind()
	d(dispatch.Loading[domain.SearchPayload](true))
	term := ss.term
	ss.mu.Unlock()

	ss.svc.Search(ss.store.Context(), domain.SearchParams{
		Request:        domain.Request{IsLoadingMore: true},
		Term:           term,
		Page:           st.Page + 1,
		FilterForTypes: ss.types,
	}, withoutLoading(d))
	return true
}

// Close stops pending searches and unmounts the screen
func (ss *SearchSession) Close() {
	ss.search.Stop()
	ss.store.Close()
}

// withoutLoading drops loading actions already reported by the caller
func withoutLoading[P any](d dispatch.Dispatch[P]) dispatch.Dispatch[P] {
	return func(a dispatch.Action[P]) {
		if a.Type == dispatch.ActionLoading {
			return
		}
		d(a)
	}
}
