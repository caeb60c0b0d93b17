// @title         sitesearch API
// @version       1.0
// @description   Search page view models and service meta endpoints.
// @BasePath      /api/v1

// Command sitesearch-api serves search page view models over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sitesearch/internal/core/version"
	"sitesearch/internal/modkit"
	"sitesearch/internal/platform/config"
	"sitesearch/internal/platform/logger"
	phttp "sitesearch/internal/platform/net/http"
	"sitesearch/internal/platform/net/middleware"
	"sitesearch/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	config.LoadDotEnv()
	version.Service = "sitesearch-api"

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")   // http server, docs, profiler
	appCfg := root.Prefix("SITESEARCH_") // site config, catalog, profile service

	l := logger.Get()
	l.Info().Str("version", version.Info().String()).Msg("starting")

	deps, err := modkit.LoadDeps(appCfg)
	if err != nil {
		l.Fatal().Err(err).Msg("load site dependencies")
	}

	// load balancers probe /health at the root, outside the versioned scope
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(middleware.Heartbeat("/health"))
	})
	api.Mount(srv.Router(), api.OptionsFromConf(apiCfg, deps))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("shutdown complete")
}
