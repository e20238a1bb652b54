// Package http serves screen state over JSON
//
// Each endpoint runs one loader into a fresh store and replies with the
// state it settled on. A failure with no data behind it becomes an error
// envelope whose status follows the failure's code.
package http

import (
	"net/http"

	"inkverse/internal/adapters/graphql"
	"inkverse/internal/core/dispatch"
	"inkverse/internal/modkit/httpkit"
	"inkverse/internal/modkit/swaggerkit"
	pnet "inkverse/internal/platform/net"
	"inkverse/internal/services/screens/domain"
	"inkverse/internal/services/screens/service"
)

// Deps are the handler dependencies
type Deps struct {
	Svc *service.Svc
	// User serves requests that carry a bearer token; nil sends everything to the public client
	User graphql.Querier
}

type handlers struct {
	svc  *service.Svc
	user graphql.Querier
}

// Routes documents the endpoints Register mounts, relative to the module prefix
var Routes = []swaggerkit.Route{
	{Method: http.MethodPost, Path: "/home", Summary: "Home feed", Tag: "Screens", Body: domain.HomeInput{}},
	{Method: http.MethodPost, Path: "/comicseries", Summary: "Series and its issues", Tag: "Screens", Body: domain.ComicSeriesInput{}},
	{Method: http.MethodPost, Path: "/comicissue", Summary: "Issue, its series and sibling issues", Tag: "Screens", Body: domain.ComicIssueInput{}},
	{Method: http.MethodPost, Path: "/creator", Summary: "Creator and their series", Tag: "Screens", Body: domain.CreatorInput{}},
	{Method: http.MethodPost, Path: "/list", Summary: "Curated list", Tag: "Screens", Body: domain.ListInput{}},
	{Method: http.MethodPost, Path: "/comics", Summary: "One page of filtered series", Tag: "Screens", Body: domain.ComicsInput{}},
	{Method: http.MethodPost, Path: "/search", Summary: "One page of search results", Tag: "Screens", Body: domain.SearchInput{}},
}

// Register mounts the screen routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{svc: d.Svc, user: d.User}

	httpkit.PostJSON(r, "/home", h.home)
	httpkit.PostJSON(r, "/comicseries", h.comicSeries)
	httpkit.PostJSON(r, "/comicissue", h.comicIssue)
	httpkit.PostJSON(r, "/creator", h.creator)
	httpkit.PostJSON(r, "/list", h.list)
	httpkit.PostJSON(r, "/comics", h.comics)
	httpkit.PostJSON(r, "/search", h.search)
}

// request picks the user client when the caller authenticated
func (h *handlers) request(r *http.Request, force bool) domain.Request {
	req := domain.Request{ForceRefresh: force}
	if h.user != nil && pnet.Bearer(r.Context()) != "" {
		req.Client = h.user
	}
	return req
}

// settle turns a store's final state into a handler result
func settle[P any](st *dispatch.Store[P]) (any, error) {
	s := st.State()
	if f := s.VisibleError(); f != nil {
		return nil, f
	}
	return s, nil
}

func (h *handlers) home(r *http.Request, in domain.HomeInput) (any, error) {
	st := service.NewHomeFeedStore(r.Context())
	defer st.Close()
	h.svc.LoadHomeFeed(st.Context(), domain.HomeFeedParams{Request: h.request(r, in.ForceRefresh)}, st.Bind())
	return settle(st)
}

func (h *handlers) comicSeries(r *http.Request, in domain.ComicSeriesInput) (any, error) {
	st := service.NewComicSeriesStore(r.Context())
	defer st.Close()
	req := h.request(r, in.ForceRefresh)
	if in.UUID != "" {
		h.svc.LoadComicSeries(st.Context(), domain.ComicSeriesParams{Request: req, UUID: in.UUID}, st.Bind())
	} else {
		h.svc.LoadComicSeriesURL(st.Context(), domain.ComicSeriesURLParams{Request: req, ShortURL: in.ShortURL}, st.Bind())
	}
	return settle(st)
}

func (h *handlers) comicIssue(r *http.Request, in domain.ComicIssueInput) (any, error) {
	st := service.NewComicIssueStore(r.Context())
	defer st.Close()
	req := h.request(r, in.ForceRefresh)
	if in.IssueUUID != "" {
		h.svc.LoadComicIssue(st.Context(), domain.ComicIssueParams{
			Request:    req,
			IssueUUID:  in.IssueUUID,
			SeriesUUID: in.SeriesUUID,
		}, st.Bind())
	} else {
		h.svc.LoadComicIssueURL(st.Context(), domain.ComicIssueURLParams{
			Request:   req,
			ShortURL:  in.ShortURL,
			EpisodeID: in.EpisodeID,
		}, st.Bind())
	}
	return settle(st)
}

func (h *handlers) creator(r *http.Request, in domain.CreatorInput) (any, error) {
	st := service.NewCreatorStore(r.Context())
	defer st.Close()
	req := h.request(r, in.ForceRefresh)
	if in.UUID != "" {
		h.svc.LoadCreator(st.Context(), domain.CreatorParams{Request: req, UUID: in.UUID}, st.Bind())
	} else {
		h.svc.LoadCreatorURL(st.Context(), domain.CreatorURLParams{Request: req, ShortURL: in.ShortURL}, st.Bind())
	}
	return settle(st)
}

func (h *handlers) list(r *http.Request, in domain.ListInput) (any, error) {
	st := service.NewListStore(r.Context())
	defer st.Close()
	h.svc.LoadList(st.Context(), domain.ListParams{Request: h.request(r, in.ForceRefresh), ID: in.ID}, st.Bind())
	return settle(st)
}

// comics answers one page; clients append later pages themselves
func (h *handlers) comics(r *http.Request, in domain.ComicsInput) (any, error) {
	st := service.NewComicsListStore(r.Context())
	defer st.Close()
	h.svc.FetchComics(st.Context(), domain.ComicsListParams{
		Request:         h.request(r, in.ForceRefresh),
		Page:            in.Page,
		LimitPerPage:    in.LimitPerPage,
		FilterForTypes:  in.FilterForTypes,
		FilterForTags:   in.FilterForTags,
		FilterForGenres: in.FilterForGenres,
	}, st.Bind())
	return settle(st)
}

func (h *handlers) search(r *http.Request, in domain.SearchInput) (any, error) {
	st := service.NewSearchStore(r.Context())
	defer st.Close()
	h.svc.Search(st.Context(), domain.SearchParams{
		Request:        h.request(r, in.ForceRefresh),
		Term:           in.Term,
		Page:           in.Page,
		LimitPerPage:   in.LimitPerPage,
		FilterForTypes: in.FilterForTypes,
	}, st.Bind())
	return settle(st)
}
