// Package module wires the screen loaders and their HTTP endpoints into the API
package module

import (
	"inkverse/internal/modkit"
	"inkverse/internal/modkit/httpkit"
	str "inkverse/internal/platform/strings"

	screenshttp "inkverse/internal/services/screens/http"
	"inkverse/internal/services/screens/repo"
	"inkverse/internal/services/screens/service"
)

// Ports is what the screens module offers other modules and binaries
type Ports struct {
	Service *service.Svc
}

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	svc       *service.Svc
	swaggerOn bool
}

// New constructs the screens module; deps.Clients must be set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("screens"),
		modkit.WithPrefix("/screens"),
	}, opts...)...)

	svc := service.New(
		repo.NewGQL(),
		deps.Public(),
		deps.Logger(str.MustString(b.Name, "screens")),
		service.ConfigFrom(deps.Cfg),
	)

	return &Module{deps: deps, built: b, svc: svc, swaggerOn: b.SwaggerOn}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		screenshttp.Register(rr, screenshttp.Deps{Svc: m.svc, User: m.deps.User()})
	})
	if m.swaggerOn {
		for _, rt := range screenshttp.Routes {
			rt.Path = m.Prefix() + rt.Path
			m.deps.Docs.Add(rt)
		}
	}
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "screens") }

// Prefix is the mount path under the API version
func (m *Module) Prefix() string { return m.built.Prefix }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return Ports{Service: m.svc} }
