// Package module wires the search page into the API using modkit
package module

import (
	modkit "sitesearch/internal/modkit"
	"sitesearch/internal/modkit/httpkit"
	str "sitesearch/internal/platform/strings"
	searchhttp "sitesearch/internal/services/api/search/http"
	searchsvc "sitesearch/internal/services/api/search/service"
)

// Module implements the search module
type Module struct {
	b   modkit.Built
	svc searchsvc.Service
}

// New constructs the search module
// a Ports option carrying a domain.ServicePort replaces the built-in builder
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("search"), modkit.WithPrefix("/search")}, opts...)...)

	var svc searchsvc.Service
	if p, ok := b.Ports.(searchsvc.Service); ok && p != nil {
		svc = p
	} else {
		svc = searchsvc.New(searchsvc.Options{
			Site:     deps.Site,
			Profiles: profileSource(deps),
			Messages: messageSource(deps),
			Log:      deps.Logger("search"),
		})
	}
	return &Module{b: b, svc: svc}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { searchhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
