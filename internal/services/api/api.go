// Package api provides the HTTP API for the application
package api

import (
	"sitesearch/internal/platform/config"
	phttp "sitesearch/internal/platform/net/http"
	"sitesearch/internal/platform/net/middleware"

	"sitesearch/internal/modkit"
	"sitesearch/internal/modkit/httpkit"
	"sitesearch/internal/modkit/module"
	"sitesearch/internal/modkit/swaggerkit"

	metamod "sitesearch/internal/services/api/meta/module"
	searchmod "sitesearch/internal/services/api/search/module"
)

// Options are the API options
type Options struct {
	Deps           modkit.Deps
	EnableSwagger  bool
	SwaggerSuffix  string
	EnableProfiler bool
	Stack          httpkit.StackOptions
}

// OptionsFromConf reads the API toggles and middleware tuning from cfg
func OptionsFromConf(cfg config.Conf, deps modkit.Deps) Options {
	return Options{
		Deps:           deps,
		EnableSwagger:  cfg.MayBool("SWAGGER", false),
		SwaggerSuffix:  cfg.MayString("ENV", ""),
		EnableProfiler: cfg.MayBool("PROFILER", false),
		Stack: httpkit.StackOptions{
			CORS:        middleware.CORSOptions{AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"})},
			Timeout:     cfg.MayDuration("REQUEST_TIMEOUT", 0),
			SlowRequest: cfg.MayDuration("SLOW_REQUEST", 0),
			Throttle:    cfg.MayInt("THROTTLE", 0),
		},
	}
}

// Modules builds the API modules in mount order
func Modules(deps modkit.Deps) []modkit.Module {
	return []modkit.Module{
		metamod.New(deps),
		searchmod.New(deps),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	mods := Modules(opt.Deps)

	// docs and profiler live outside the versioned scope
	swaggerkit.Mount(r, swaggerkit.Options{Enabled: opt.EnableSwagger, TitleSuffix: opt.SwaggerSuffix})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name for cross-module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
