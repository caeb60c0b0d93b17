package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "sitesearch/internal/platform/net/http"
	kit "sitesearch/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func fetchSpec(t *testing.T, h http.HandlerFunc) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest("GET", "/api/docs/doc.json", nil))
	var spec map[string]any
	if rr.Code == http.StatusOK {
		if err := json.Unmarshal(rr.Body.Bytes(), &spec); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rr.Code, spec
}

func TestServeDocJSON_FillsDefaults(t *testing.T) {
	kit.Serial(t)
	code, spec := fetchSpec(t, serveDocJSON("staging"))
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	if title := spec["info"].(map[string]any)["title"]; title != "sitesearch API staging" {
		t.Fatalf("title = %v", title)
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatalf("ErrorResponse schema missing")
	}
	for _, want := range []string{"/search/page", "/search/sites/{site}/page", "/meta/ready"} {
		node, ok := spec["paths"].(map[string]any)[want].(map[string]any)
		if !ok {
			t.Fatalf("path %s missing", want)
		}
		for method, op := range node {
			resp := op.(map[string]any)["responses"].(map[string]any)
			if _, ok := resp["500"]; !ok {
				t.Fatalf("%s %s lacks a 500 response", method, want)
			}
			if _, ok := resp["400"]; !ok {
				t.Fatalf("%s %s lacks a 400 response", method, want)
			}
		}
	}
}

func TestServeDocJSON_Mutators(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &mutators, nil)
	Register(nil)
	Register(func(spec map[string]any) { spec["x-site"] = "swsdp" })

	_, spec := fetchSpec(t, serveDocJSON(""))
	if spec["x-site"] != "swsdp" {
		t.Fatalf("mutator not applied")
	}
	if len(mutators) != 1 {
		t.Fatalf("nil mutator should be ignored")
	}
}

func TestServeDocJSON_BadDocument(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &docReader, func() []byte { return []byte("{") })
	if code, _ := fetchSpec(t, serveDocJSON("")); code != http.StatusInternalServerError {
		t.Fatalf("status = %d", code)
	}
}

func TestEnsureServers_Swagger2Replaced(t *testing.T) {
	spec := map[string]any{"swagger": "2.0", "servers": []any{"keep"}}
	ensureServers(spec, "/api/v1")
	if _, ok := spec["swagger"]; ok || spec["openapi"] != "3.0.3" {
		t.Fatalf("unexpected spec: %v", spec)
	}
	if s := spec["servers"].([]any); len(s) != 1 || s[0] != "keep" {
		t.Fatalf("existing servers replaced: %v", s)
	}
}

func TestMount(t *testing.T) {
	kit.Serial(t)
	for _, enabled := range []bool{true, false} {
		r := phttp.AdaptChi(chi.NewRouter())
		Mount(r, Options{Enabled: enabled})

		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest("GET", "/api/docs", nil))
		want := http.StatusNotFound
		if enabled {
			want = http.StatusPermanentRedirect
		}
		if rr.Code != want {
			t.Fatalf("enabled=%v: /api/docs status %d, want %d", enabled, rr.Code, want)
		}
	}
}
