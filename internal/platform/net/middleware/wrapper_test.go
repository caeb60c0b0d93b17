package middleware_test

import (
	"compress/flate"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sitesearch/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestStripSlashes_RoutesTrailingSlash(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes())
	r.Get("/search/page", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest("GET", "/search/page/", nil)).Code)
}

func TestHeartbeat_ShortCircuits(t *testing.T) {
	reached := false
	h := middleware.Heartbeat("/health")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { reached = true }))

	rr := serve(h, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, reached)

	serve(h, httptest.NewRequest("GET", "/search/page", nil))
	assert.True(t, reached)
}

func TestTimeout_SetsDeadline(t *testing.T) {
	var deadline bool
	h := middleware.Timeout(time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
	}))
	serve(h, httptest.NewRequest("GET", "/", nil))
	assert.True(t, deadline)
}

func TestThrottle_RejectsOverLimit(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	h := middleware.Throttle(1)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
	}))

	done := make(chan struct{})
	go func() {
		serve(h, httptest.NewRequest("GET", "/", nil))
		close(done)
	}()
	<-entered

	// chi's throttle waits for a slot until the request context ends
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	rr := serve(h, httptest.NewRequest("GET", "/", nil).WithContext(ctx))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	close(release)
	<-done
}

func TestCompress_GzipWhenAccepted(t *testing.T) {
	h := middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":"` + strings.Repeat("a", 4<<10) + `"}`))
	}))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	assert.Equal(t, "gzip", serve(h, req).Header().Get("Content-Encoding"))
}

func TestCORS_DefaultsFillMissing(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://share.example"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
	)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/search/page", nil)
	req.Header.Set("Origin", "https://share.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Accept-Language")

	rr := serve(h, req)
	assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Methods"))
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Headers"))
}

func TestCorrelationChain_Runs(t *testing.T) {
	chain := []func(http.Handler) http.Handler{
		middleware.RealIP(),
		middleware.RequestID(),
		middleware.Scope(),
		middleware.RecoverJSON,
		middleware.NoCache(),
	}

	var rid, remote string
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid = chimw.GetReqID(r.Context())
		remote = r.RemoteAddr
		w.WriteHeader(http.StatusOK)
	})
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	rr := serve(h, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rid)
	assert.Equal(t, "1.2.3.4", remote)
	assert.NotEmpty(t, rr.Header().Get("Cache-Control"))
}
