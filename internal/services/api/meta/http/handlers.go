// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"inkverse/internal/adapters/graphql"
	"inkverse/internal/core/version"
	"inkverse/internal/modkit/httpkit"
	"inkverse/internal/modkit/swaggerkit"
	perr "inkverse/internal/platform/errors"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Cache is the query cache both GraphQL clients share; nil disables the cache routes
	Cache *graphql.Cache
	// Screens reports the loader settings when the screens module is mounted
	Screens func() (ScreensInfo, bool)
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Routes documents the endpoints Register mounts, relative to the module prefix
var Routes = []swaggerkit.Route{
	{Method: http.MethodGet, Path: "/health", Summary: "Health check", Tag: "Meta"},
	{Method: http.MethodGet, Path: "/version", Summary: "Build and version info", Tag: "Meta"},
	{Method: http.MethodGet, Path: "/service", Summary: "Service info and uptime", Tag: "Meta"},
	{Method: http.MethodGet, Path: "/cache", Summary: "Query cache size", Tag: "Meta"},
	{Method: http.MethodPost, Path: "/cache/reset", Summary: "Drop every cached query and entity", Tag: "Meta"},
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/cache", h.cacheStats)
	httpkit.Post(r, "/cache/reset", h.cacheReset)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"inkverse-api"`
	Started string `json:"started"  example:"2026-10-19T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-19T13:05:00Z"`
}

// ScreensInfo is the paging and debounce setup the screen loaders run with
type ScreensInfo struct {
	PageSize       int    `json:"pageSize"       example:"15"`
	SearchDebounce string `json:"searchDebounce" example:"300ms"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string       `json:"name"              example:"inkverse-api"`
	Started string       `json:"started"           example:"2026-10-19T13:00:00Z"`
	Uptime  int64        `json:"uptime"            example:"300"`
	Screens *ScreensInfo `json:"screens,omitempty"`
}

// CacheResponse reports how much the query cache holds
type CacheResponse struct {
	graphql.CacheStats
	Reset bool `json:"reset,omitempty"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.now().Sub(h.deps.StartedAt)
	out := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}
	if h.deps.Screens != nil {
		if info, ok := h.deps.Screens(); ok {
			out.Screens = &info
		}
	}
	return out, nil
}

func (h *handlers) cacheStats(_ *http.Request) (any, error) {
	if h.deps.Cache == nil {
		return nil, perr.Unavailablef("query cache not configured")
	}
	return CacheResponse{CacheStats: h.deps.Cache.Stats()}, nil
}

func (h *handlers) cacheReset(_ *http.Request) (any, error) {
	if h.deps.Cache == nil {
		return nil, perr.Unavailablef("query cache not configured")
	}
	h.deps.Cache.Reset()
	return CacheResponse{CacheStats: h.deps.Cache.Stats(), Reset: true}, nil
}
