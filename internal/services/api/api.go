// Package api provides the HTTP API for the application
package api

import (
	"inkverse/internal/adapters/graphql"
	"inkverse/internal/core/version"
	"inkverse/internal/platform/config"
	"inkverse/internal/platform/logger"
	phttp "inkverse/internal/platform/net/http"
	"inkverse/internal/platform/net/middleware"

	"inkverse/internal/modkit"
	"inkverse/internal/modkit/httpkit"
	"inkverse/internal/modkit/module"
	"inkverse/internal/modkit/swaggerkit"

	metamod "inkverse/internal/services/api/meta/module"
	screensmod "inkverse/internal/services/screens/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Clients       *graphql.Clients
	Logger        *logger.Logger
	EnableSwagger bool
	CORS          middleware.CORSOptions
}

// Mount mounts the API service onto the given router and returns the mounted modules
func Mount(r phttp.Router, opt Options) []modkit.Module {
	var docs *swaggerkit.Doc
	if opt.EnableSwagger {
		docs = swaggerkit.NewDoc("Inkverse API", version.Info().Version, "/api/v1")
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:     opt.Logger,
		Cfg:     opt.Config,
		Clients: opt.Clients,
		Docs:    docs,
	}

	mods := []modkit.Module{
		metamod.New(deps, modkit.WithSwagger(opt.EnableSwagger)),
		screensmod.New(deps, modkit.WithSwagger(opt.EnableSwagger)),
	}

	swaggerkit.Mount(r, opt.EnableSwagger, docs)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORS), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	deps.Logger("api").Debug().Int("modules", len(mods)).Bool("swagger", opt.EnableSwagger).Msg("api mounted")
	return mods
}

// ClientsFromConfig builds the client pair from INKVERSE_* settings
// The user client forwards the caller's bearer token, falling back to INKVERSE_USER_TOKEN
func ClientsFromConfig(cfg config.Conf, log *logger.Logger) *graphql.Clients {
	o := graphql.ClientsFromConfig(cfg)
	o.Token = graphql.ContextToken(o.Token)
	o.Log = log
	return graphql.NewClients(o)
}
