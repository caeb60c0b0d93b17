// Package modkit provides module wiring and core deps
package modkit

import (
	"sitesearch/internal/adapters/profiles"
	"sitesearch/internal/core/catalog"
	"sitesearch/internal/core/siteconfig"
	"sitesearch/internal/platform/config"
	perr "sitesearch/internal/platform/errors"
	"sitesearch/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// Site is resolved once at startup; Profiles may be nil when no profile service is configured
type Deps struct {
	Log      *logger.Logger
	Cfg      config.Conf
	Site     siteconfig.Site
	Catalog  *catalog.Catalog
	Profiles profiles.Source
}

// Logger returns Log or a component logger when none was injected
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Named(component)
}

// LoadDeps resolves site config, catalog and profile source from cfg
// reads SITE_CONFIG, DEFAULT_LOCALE and PROFILES_* under cfg
func LoadDeps(cfg config.Conf) (Deps, error) {
	site, err := siteconfig.FromConf(cfg)
	if err != nil {
		return Deps{}, err
	}
	cat, err := catalog.New(site.Messages, cfg.MayString("DEFAULT_LOCALE", catalog.DefaultLocale))
	if err != nil {
		return Deps{}, perr.WithOp(err, "modkit.LoadDeps")
	}
	return Deps{
		Cfg:      cfg,
		Site:     site,
		Catalog:  cat,
		Profiles: profiles.FromConf(cfg),
	}, nil
}
