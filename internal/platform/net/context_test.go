package net_test

import (
	"context"
	"testing"

	pnet "sitesearch/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets both ids", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123", "swsdp")
		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := pnet.SiteID(ctx); got != "swsdp" {
			t.Fatalf("SiteID got %q want %q", got, "swsdp")
		}
	})

	t.Run("sets only request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "r-only", "")
		if got := pnet.RequestID(ctx); got != "r-only" {
			t.Fatalf("RequestID got %q want %q", got, "r-only")
		}
		if got := pnet.SiteID(ctx); got != "" {
			t.Fatalf("SiteID got %q want empty", got)
		}
	})

	t.Run("no ids returns same ctx", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "")
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when both ids empty")
		}
		if pnet.RequestID(ctx) != "" || pnet.SiteID(ctx) != "" {
			t.Fatalf("expected empty getters")
		}
	})
}

func TestWithLocale(t *testing.T) {
	base := context.Background()
	if got := pnet.Locale(pnet.WithLocale(base, "fr-FR,fr;q=0.9")); got != "fr-FR,fr;q=0.9" {
		t.Fatalf("Locale got %q", got)
	}
	if pnet.WithLocale(base, "") != base {
		t.Fatalf("empty locale should not wrap ctx")
	}
	if got := pnet.Locale(base); got != "" {
		t.Fatalf("Locale on bare ctx = %q", got)
	}
}
