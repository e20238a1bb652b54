// Command inkverse-api serves screen state for the Inkverse reader over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"inkverse/internal/platform/config"
	"inkverse/internal/platform/logger"
	phttp "inkverse/internal/platform/net/http"
	"inkverse/internal/platform/net/middleware"

	"inkverse/internal/services/api"
)

func main() {
	root := config.New()
	// service-scoped config for HTTP etc (CORE_API_*)
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clients := api.ClientsFromConfig(root, logger.Named("graphql"))

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(srv.Router(), api.Options{
		Config:        root,
		Clients:       clients,
		Logger:        l,
		EnableSwagger: apiCfg.MayBool("SWAGGER", true),
		CORS: middleware.CORSOptions{
			AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
			MaxAge:         apiCfg.MayInt("CORS_MAX_AGE", 300),
		},
	})

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
