package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zerolog.Level{
		"trace":        zerolog.TraceLevel,
		"DEBUG":        zerolog.DebugLevel,
		" info ":       zerolog.InfoLevel,
		"warn":         zerolog.WarnLevel,
		"warning":      zerolog.WarnLevel,
		"error":        zerolog.ErrorLevel,
		"fatal":        zerolog.FatalLevel,
		"panic":        zerolog.PanicLevel,
		"":             zerolog.DebugLevel,
		"   nonsense ": zerolog.DebugLevel,
	} {
		assert.Equal(t, want, parseLevel(in), "parseLevel(%q)", in)
	}
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, ln := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if ln == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(ln), &m), ln)
		out = append(out, m)
	}
	return out
}

func TestBuild_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{
		Level:        "info",
		Format:       "json",
		Service:      "sitesearch-api",
		Component:    "search",
		Writer:       &buf,
		StaticFields: map[string]string{"env": "test"},
	})
	l.Debug().Msg("dropped")
	l.Info().Str("site", "swsdp").Msg("page built")

	got := lines(t, &buf)
	require.Len(t, got, 1, "debug is below info")
	assert.Equal(t, "page built", got[0]["message"])
	assert.Equal(t, "sitesearch-api", got[0]["service"])
	assert.Equal(t, "search", got[0]["component"])
	assert.Equal(t, "test", got[0]["env"])
	assert.Equal(t, "swsdp", got[0]["site"])
	assert.NotEmpty(t, got[0]["time"])
}

func TestBuild_ConsoleAndCaller(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "debug", Format: "console", Writer: &buf, WithCaller: true})
	l.Debug().Msg("console line")
	out := buf.String()
	assert.Contains(t, out, "console line")
	assert.Contains(t, out, "logger_test.go")
}

func TestBuild_SamplingDropsLines(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "info", Format: "json", Writer: &buf, SampleEvery: 3})
	for range 6 {
		l.Info().Msg("tick")
	}
	assert.Len(t, lines(t, &buf), 2)
}

func TestC_StampsScope(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "info", Format: "json", Writer: &buf})
	root.Store(&l)

	ctx := WithSite(WithRequest(context.Background(), "req-123", ""), "swsdp")
	C(ctx).Info().Msg("scoped")
	C(context.Background()).Info().Msg("bare")
	Named("profiles").Info().Msg("named")

	got := lines(t, &buf)
	require.Len(t, got, 3)
	assert.Equal(t, "req-123", got[0]["request_id"])
	assert.Equal(t, "swsdp", got[0]["site_id"])
	assert.NotContains(t, got[1], "request_id")
	assert.NotContains(t, got[1], "site_id")
	assert.Equal(t, "profiles", got[2]["component"])
}

func TestWith_KeepsBaseFields(t *testing.T) {
	var buf bytes.Buffer
	base := build(Options{Level: "info", Format: "json", Writer: &buf, Component: "search"})

	With(WithRequest(context.Background(), "req-9", "swsdp"), &base).Warn().Msg("override")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "search", got[0]["component"])
	assert.Equal(t, "req-9", got[0]["request_id"])
	assert.Equal(t, "swsdp", got[0]["site_id"])
}

func TestWithRequest_MergesScope(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-1", "alpha")
	ctx = WithSite(ctx, "beta")
	ctx = WithRequest(ctx, "", "")
	s := scopeOf(ctx)
	assert.Equal(t, scope{requestID: "req-1", siteID: "beta"}, s)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "sitesearch-render")
	t.Setenv("LOG_COMPONENT", "cli")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")
	assert.Equal(t, Options{
		Level:       "warn",
		Format:      "json",
		Service:     "sitesearch-render",
		Component:   "cli",
		WithCaller:  true,
		SampleEvery: 5,
	}, FromEnv())

	for _, k := range []string{"LOG_LEVEL", "LOG_FORMAT", "LOG_SERVICE", "LOG_COMPONENT", "LOG_CALLER", "LOG_SAMPLE_EVERY"} {
		t.Setenv(k, "")
	}
	opt := FromEnv()
	assert.Equal(t, "info", opt.Level)
	assert.Equal(t, "console", opt.Format)
	assert.Equal(t, "sitesearch", opt.Service)
}
