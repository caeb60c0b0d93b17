// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "sitesearch/internal/modkit"
	"sitesearch/internal/modkit/httpkit"
	str "sitesearch/internal/platform/strings"

	metahttp "sitesearch/internal/services/api/meta/http"
)

// ServiceName is reported by health and service endpoints
const ServiceName = "sitesearch-api"

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	deps      modkit.Deps
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	return &Module{b: b, deps: deps, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName:  ServiceName,
			StartedAt:    m.startedAt,
			Dependencies: m.dependencies(),
			ReadyTimeout: m.deps.Cfg.MayDuration("READY_TIMEOUT", 2*time.Second),
		})
	})
}

// dependencies lists upstreams the ready probe pings
// an unconfigured profile service is reported as skipped
func (m *Module) dependencies() []metahttp.Dependency {
	var profiles any
	if m.deps.Profiles != nil {
		profiles = m.deps.Profiles
	}
	return []metahttp.Dependency{{Name: "profiles", Target: profiles}}
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.b.Ports }
