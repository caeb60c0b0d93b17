// Package http provides http transport for the search page
package http

import (
	stdhttp "net/http"
	"net/url"

	"sitesearch/internal/modkit/httpkit"
	"sitesearch/internal/platform/logger"
	"sitesearch/internal/services/api/search/domain"
	svc "sitesearch/internal/services/api/search/service"
)

// Register mounts search endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// repository-wide page
	httpkit.Get(r, "/page", h.page)

	// page scoped to a site
	httpkit.Get(r, "/sites/{site}/page", h.sitePage)

	// page from explicit inputs
	httpkit.PostJSON[domain.PageInput](r, "/page", h.build)
}

type handlers struct{ svc svc.Service }

// fromQuery flattens the query string; page args and widget overrides share it
func fromQuery(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func pageContext(r *stdhttp.Request, site string) domain.PageContext {
	args := fromQuery(r.URL.Query())
	ta := map[string]string{}
	if site != "" {
		ta[domain.TemplateArgSite] = site
	}
	return domain.PageContext{
		SiteID:       site,
		Args:         args,
		TemplateArgs: ta,
		WidgetArgs:   args,
		Locale:       r.Header.Get("Accept-Language"),
	}
}

// swagger:route GET /search/page Search searchPage
// @Summary Search page model outside any site
// @Tags Search
// @Produce json
// @Param t query string false "search term"
// @Param a query string false "search all sites"
// @Success 200 {object} domain.Page "ok"
// @Router /search/page [get]
func (h *handlers) page(r *stdhttp.Request) (any, error) {
	return h.svc.Build(r.Context(), pageContext(r, "")), nil
}

// swagger:route GET /search/sites/{site}/page Search searchSitePage
// @Summary Search page model for a site
// @Tags Search
// @Produce json
// @Param site path string true "site short name"
// @Success 200 {object} domain.Page "ok"
// @Router /search/sites/{site}/page [get]
func (h *handlers) sitePage(r *stdhttp.Request) (any, error) {
	site := httpkit.Param(r, "site")
	ctx := logger.WithSite(r.Context(), site)
	return h.svc.Build(ctx, pageContext(r, site)), nil
}

// swagger:route POST /search/page Search searchBuildPage
// @Summary Search page model from an explicit page context
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body domain.PageInput true "Page context"
// @Success 200 {object} domain.Page "ok"
// @Router /search/page [post]
func (h *handlers) build(r *stdhttp.Request, in domain.PageInput) (any, error) {
	pc := in.Context()
	if pc.Locale == "" {
		pc.Locale = r.Header.Get("Accept-Language")
	}
	ctx := logger.WithSite(r.Context(), pc.SiteID)
	return h.svc.Build(ctx, pc), nil
}
