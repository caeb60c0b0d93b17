package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "sitesearch/internal/platform/net"
	"sitesearch/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestScope_CarriesRequestIDAndLocale(t *testing.T) {
	var gotReq, gotLocale string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = pnet.RequestID(r.Context())
		gotLocale = pnet.Locale(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/search/page", nil)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	req.Header.Set(chimw.RequestIDHeader, "abc-1")
	rr := httptest.NewRecorder()

	chimw.RequestID(middleware.Scope()(next)).ServeHTTP(rr, req)

	if gotReq != "abc-1" {
		t.Fatalf("request id = %q, want abc-1", gotReq)
	}
	if gotLocale != "de-DE,de;q=0.9" {
		t.Fatalf("locale = %q", gotLocale)
	}
}
