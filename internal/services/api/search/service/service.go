// Package service builds the search page model
package service

import (
	"context"
	"strconv"
	"strings"

	"sitesearch/internal/core/siteconfig"
	"sitesearch/internal/platform/logger"
	"sitesearch/internal/services/api/search/domain"

	"github.com/google/uuid"
)

// Service defines the search service contract
type Service interface {
	domain.ServicePort
}

// Options configures the Builder
type Options struct {
	Site     siteconfig.Site
	Profiles domain.ProfileSource // nil disables title lookups
	Messages domain.MessageSource // nil falls back to sort values
	Log      *logger.Logger
	NewID    func() string
}

// Builder implements Service; it holds no per-request state
type Builder struct {
	site     siteconfig.Site
	profiles domain.ProfileSource
	messages domain.MessageSource
	log      *logger.Logger
	newID    func() string
}

// New constructs a Builder
func New(o Options) *Builder {
	if o.Log == nil {
		o.Log = logger.Named("search")
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return &Builder{
		site:     o.Site,
		profiles: o.Profiles,
		messages: o.Messages,
		log:      o.Log,
		newID:    o.NewID,
	}
}

// Build assembles the page model and widget list; it never fails
func (b *Builder) Build(ctx context.Context, pc domain.PageContext) domain.Page {
	siteID := pc.Site()
	policy := b.site.Search.RepositorySearch

	m := domain.SearchPageModel{
		SiteID:         siteID,
		SiteTitle:      b.siteTitle(ctx, siteID),
		SortFields:     b.sortFields(pc.Locale),
		SearchTerm:     pc.Arg(domain.ArgTerm),
		SearchTag:      pc.Arg(domain.ArgTag),
		SearchSort:     pc.Arg(domain.ArgSort),
		SearchRepo:     (pc.Arg(domain.ArgRepo) == "true" || policy == siteconfig.PolicyAlways) && policy != siteconfig.PolicyNone,
		SearchAllSites: pc.Arg(domain.ArgAllSites) == "true" || siteID == "",
		SearchQuery:    pc.Arg(domain.ArgQuery),
	}

	return domain.Page{
		Model:   m,
		Widgets: []domain.Widget{b.searchWidget(ctx, m, pc.WidgetArgs)},
	}
}

// siteTitle performs the single profile lookup; every failure yields ""
func (b *Builder) siteTitle(ctx context.Context, siteID string) string {
	if siteID == "" || b.profiles == nil {
		return ""
	}
	p, err := b.profiles.SiteProfile(ctx, siteID)
	if err != nil {
		logger.With(ctx, b.log).Warn().Err(err).Str("site", siteID).Msg("site profile unavailable; rendering without title")
		return ""
	}
	return p.DisplayTitle()
}

// sortFields keeps configuration order; label is explicit text, then catalog text, then the sort value
func (b *Builder) sortFields(locale string) []domain.SortFieldSpec {
	sorts := b.site.Search.Sorting
	out := make([]domain.SortFieldSpec, 0, len(sorts))

	var msgs domain.Lookup
	if b.messages != nil {
		msgs = b.messages.For(locale)
	}
	for _, s := range sorts {
		var label string
		switch {
		case s.Label != nil:
			label = *s.Label
		case s.LabelID != "" && msgs != nil:
			label, _ = msgs.Get(s.LabelID)
		}
		if label == "" {
			label = s.Value
		}
		out = append(out, domain.SortFieldSpec{Type: s.Value, Label: label})
	}
	return out
}

func (b *Builder) searchWidget(ctx context.Context, m domain.SearchPageModel, wargs map[string]string) domain.Widget {
	id := b.newID()
	if h := strings.TrimSpace(wargs[domain.WidgetArgHTMLID]); h != "" {
		id = domain.WidgetID(h)
	}
	return domain.Widget{
		ID:          id,
		Name:        domain.SearchWidgetName,
		UseMessages: true,
		UseOptions:  true,
		Options: domain.WidgetOptions{
			SiteID:                  m.SiteID,
			SiteTitle:               m.SiteTitle,
			InitialSearchTerm:       m.SearchTerm,
			InitialSearchTag:        m.SearchTag,
			InitialSearchAllSites:   m.SearchAllSites,
			InitialSearchRepository: m.SearchRepo,
			InitialSort:             m.SearchSort,
			SearchQuery:             m.SearchQuery,
			SearchRootNode:          b.site.RepositoryLibrary.RootNode,
			MinSearchTermLength:     b.bound(ctx, wargs, domain.WidgetArgMinTerm, b.site.Search.MinSearchTermLength),
			MaxSearchResults:        b.bound(ctx, wargs, domain.WidgetArgMaxHits, b.site.Search.MaxSearchResults),
		},
	}
}

// bound reads a numeric override; absent or unusable values keep the configured default
func (b *Builder) bound(ctx context.Context, wargs map[string]string, key string, def int) int {
	raw, ok := wargs[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		logger.With(ctx, b.log).Warn().Str("arg", key).Str("value", raw).Int("default", def).Msg("ignoring invalid widget override")
		return def
	}
	return n
}
