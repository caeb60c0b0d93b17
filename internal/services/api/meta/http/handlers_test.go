package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	phttp "sitesearch/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func get(t *testing.T, d Deps, path string, out any) int {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, d)
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
	env := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v (%s)", path, err, rr.Body.String())
	}
	return rr.Code
}

func fixedDeps(deps ...Dependency) Deps {
	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	return Deps{
		ServiceName:  "sitesearch-api",
		StartedAt:    start,
		Dependencies: deps,
		Now:          func() time.Time { return start.Add(5 * time.Minute) },
	}
}

func TestHealthAndService(t *testing.T) {
	var h HealthResponse
	if code := get(t, fixedDeps(), "/health", &h); code != 200 || !h.OK || h.Service != "sitesearch-api" {
		t.Fatalf("health: %d %+v", code, h)
	}
	if h.Now != "2026-10-19T09:05:00Z" {
		t.Fatalf("now = %q", h.Now)
	}
	var s ServiceResponse
	if get(t, fixedDeps(), "/service", &s); s.Uptime != 300 || s.Started != "2026-10-19T09:00:00Z" {
		t.Fatalf("service: %+v", s)
	}
}

func TestReady(t *testing.T) {
	cases := []struct {
		name   string
		deps   []Dependency
		code   int
		status string
	}{
		{"no deps", nil, 200, "ok"},
		{"ok", []Dependency{{"profiles", pinger{}}}, 200, "ok"},
		{"skipped", []Dependency{{"profiles", nil}}, 200, "degraded"},
		{"unknown", []Dependency{{"profiles", struct{}{}}}, 200, "degraded"},
		{"fail", []Dependency{{"a", nil}, {"profiles", pinger{err: errors.New("refused")}}}, 503, "fail"},
	}
	for _, c := range cases {
		var rr ReadyResponse
		code := get(t, fixedDeps(c.deps...), "/ready", &rr)
		if code != c.code || rr.Status != c.status || len(rr.Checks) != len(c.deps) {
			t.Fatalf("%s: code=%d resp=%+v", c.name, code, rr)
		}
	}
}

func TestReady_FailSetsRetryAfter(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, fixedDeps(Dependency{"profiles", pinger{err: errors.New("refused")}}))
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest("GET", "/ready", nil))
	if rr.Code != 503 || rr.Header().Get("Retry-After") != "5" {
		t.Fatalf("code=%d retry-after=%q", rr.Code, rr.Header().Get("Retry-After"))
	}
}

func TestReady_FailCarriesError(t *testing.T) {
	var rr ReadyResponse
	get(t, fixedDeps(Dependency{"profiles", pinger{err: errors.New("refused")}}), "/ready", &rr)
	if rr.Checks[0].Error != "refused" || rr.Checks[0].Status != "fail" {
		t.Fatalf("unexpected check: %+v", rr.Checks[0])
	}
}

func TestVersion(t *testing.T) {
	var v struct {
		Version   string `json:"version"`
		GoVersion string `json:"go_version"`
	}
	if code := get(t, fixedDeps(), "/version", &v); code != 200 || v.Version == "" || v.GoVersion == "" {
		t.Fatalf("version: %d %+v", code, v)
	}
}
