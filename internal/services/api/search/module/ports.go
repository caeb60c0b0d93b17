package module

import (
	"context"

	"sitesearch/internal/adapters/profiles"
	"sitesearch/internal/core/catalog"
	modkit "sitesearch/internal/modkit"
	"sitesearch/internal/services/api/search/domain"
)

// Ports returns the page builder for cross-module use
func (m *Module) Ports() any { return domain.ServicePort(m.svc) }

type adaptProfiles struct{ src profiles.Source }

// SiteProfile maps the adapter profile onto the domain type
func (a adaptProfiles) SiteProfile(ctx context.Context, siteID string) (domain.SiteProfile, error) {
	p, err := a.src.SiteProfile(ctx, siteID)
	if err != nil {
		return domain.SiteProfile{}, err
	}
	return domain.SiteProfile{Title: p.Title, ShortName: p.ShortName}, nil
}

type adaptCatalog struct{ c *catalog.Catalog }

// For negotiates the locale against the catalog
func (a adaptCatalog) For(locale string) domain.Lookup { return a.c.For(locale) }

func profileSource(d modkit.Deps) domain.ProfileSource {
	if d.Profiles == nil {
		return nil
	}
	return adaptProfiles{src: d.Profiles}
}

func messageSource(d modkit.Deps) domain.MessageSource {
	if d.Catalog == nil {
		return nil
	}
	return adaptCatalog{c: d.Catalog}
}
