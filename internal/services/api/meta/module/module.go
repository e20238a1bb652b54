// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "inkverse/internal/modkit"
	"inkverse/internal/modkit/httpkit"
	registry "inkverse/internal/modkit/module"
	str "inkverse/internal/platform/strings"

	metahttp "inkverse/internal/services/api/meta/http"
	screensmod "inkverse/internal/services/screens/module"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{deps: deps, built: b, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: m.deps.Cfg.MayString("SERVICE_NAME", "inkverse-api"),
			StartedAt:   m.startedAt,
			Cache:       m.deps.Cache(),
			Screens:     screensInfo,
		})
	})
	if m.built.SwaggerOn {
		for _, rt := range metahttp.Routes {
			rt.Path = m.built.Prefix + rt.Path
			m.deps.Docs.Add(rt)
		}
	}
}

// screensInfo looks the screens module up in the port registry at request time,
// so meta can be mounted before it
func screensInfo() (metahttp.ScreensInfo, bool) {
	p, ok := registry.PortsAs[screensmod.Ports]("screens")
	if !ok || p.Service == nil {
		return metahttp.ScreensInfo{}, false
	}
	cfg := p.Service.Config()
	return metahttp.ScreensInfo{PageSize: cfg.PageSize, SearchDebounce: cfg.SearchDebounce.String()}, true
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
