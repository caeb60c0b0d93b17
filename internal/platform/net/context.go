// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keySiteID ctxKey = "site_id"
	keyLocale ctxKey = "locale"
)

// WithRequest annotates context with the request id and the site the page renders for
func WithRequest(ctx context.Context, reqID, siteID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if siteID != "" {
		ctx = context.WithValue(ctx, keySiteID, siteID)
	}
	return ctx
}

// WithLocale annotates context with the negotiated Accept-Language value
func WithLocale(ctx context.Context, locale string) context.Context {
	if locale != "" {
		ctx = context.WithValue(ctx, keyLocale, locale)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// SiteID returns the site id on the context if present
func SiteID(ctx context.Context) string {
	if v, ok := ctx.Value(keySiteID).(string); ok {
		return v
	}
	return ""
}

// Locale returns the locale on the context if present
func Locale(ctx context.Context) string {
	if v, ok := ctx.Value(keyLocale).(string); ok {
		return v
	}
	return ""
}
