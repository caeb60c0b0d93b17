package domain

import "context"

// ProfileSource resolves a site id to its profile; any error means "no profile"
type ProfileSource interface {
	SiteProfile(ctx context.Context, siteID string) (SiteProfile, error)
}

// Lookup is a locale-bound message lookup
type Lookup interface {
	Get(key string) (string, bool)
}

// MessageSource hands out lookups for a requested locale
type MessageSource interface {
	For(locale string) Lookup
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Build(ctx context.Context, pc PageContext) Page
}
