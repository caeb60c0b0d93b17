// Package config reads service settings from prefixed environment variables
package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"sitesearch/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Conf is a namespaced view over environment variables
// cmd roots are "CORE_API_" for the transport and "SITESEARCH_" for the domain
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// LoadDotEnv loads .env style files into the process environment
// variables already set win and missing files are skipped
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logger.Get().Warn().Err(err).Str("file", f).Msg("env file not loaded")
		}
	}
}

// Prefix returns a child view, e.g. cfg.Prefix("PROFILES_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(key string) string { return strings.TrimSpace(os.Getenv(c.key(key))) }

var errNotAbsolute = errors.New("url is not absolute")

// parsed returns def for an unset key; a value parse rejects is logged and also yields def
func parsed[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().
			Err(err).
			Str("key", c.key(key)).
			Str("value", s).
			Interface("default", def).
			Msg("unparseable env value; using default")
		return def
	}
	return v
}

// MustString panics if the key is missing or blank
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value as an int or def
func (c Conf) MayInt(key string, def int) int {
	return parsed(c, key, def, strconv.Atoi)
}

// MayBool returns the value as a bool (strconv.ParseBool forms) or def
func (c Conf) MayBool(key string, def bool) bool {
	return parsed(c, key, def, strconv.ParseBool)
}

// MayDuration returns the value as a time.Duration or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parsed(c, key, def, time.ParseDuration)
}

// MayURL returns an absolute URL without its trailing slash, or def
func (c Conf) MayURL(key, def string) string {
	return parsed(c, key, def, func(s string) (string, error) {
		u, err := url.Parse(s)
		if err != nil {
			return "", err
		}
		if !u.IsAbs() {
			return "", errNotAbsolute
		}
		return strings.TrimRight(s, "/"), nil
	})
}

// MayCSV splits a comma separated value dropping blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it case-insensitively matches one of allowed, def when unset
// any other value is a startup error and panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
