package profiles

import (
	"context"
	"testing"
	"time"

	"sitesearch/internal/platform/config"
	perr "sitesearch/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls int
	err   error
	p     Profile
	pings int
}

func (f *fakeSource) SiteProfile(context.Context, string) (Profile, error) {
	f.calls++
	return f.p, f.err
}

func (f *fakeSource) Ping(context.Context) error {
	f.pings++
	return nil
}

func TestBreaker_OpensAfterServiceFailures(t *testing.T) {
	src := &fakeSource{err: perr.Unavailablef("down")}
	b := NewBreaker(src, BreakerOptions{FailureThreshold: 2, OpenFor: time.Hour})

	for range 2 {
		_, err := b.SiteProfile(context.Background(), "s")
		require.Error(t, err)
	}
	assert.Equal(t, "open", b.State())

	_, err := b.SiteProfile(context.Background(), "s")
	assert.Equal(t, perr.ErrorCodeUnavailable, perr.CodeOf(err))
	assert.Equal(t, 2, src.calls, "open breaker must not reach the source")
}

func TestBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	src := &fakeSource{err: perr.NotFoundf("no site")}
	b := NewBreaker(src, BreakerOptions{FailureThreshold: 1})

	for range 3 {
		_, err := b.SiteProfile(context.Background(), "s")
		assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))
	}
	assert.Equal(t, "closed", b.State())
	assert.Equal(t, 3, src.calls)
}

func TestBreaker_PassesProfileThrough(t *testing.T) {
	src := &fakeSource{p: Profile{ShortName: "s", Title: "T"}}
	b := NewBreaker(src, BreakerOptions{})
	p, err := b.SiteProfile(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, "T", p.Title)

	require.NoError(t, b.Ping(context.Background()))
	assert.Equal(t, 1, src.pings)
}

func TestFromConf(t *testing.T) {
	cfg := config.New().Prefix("PROFTEST_")
	assert.Nil(t, FromConf(cfg))

	t.Setenv("PROFTEST_PROFILES_URL", "http://repo:8080/alfresco/service")
	_, isBreaker := FromConf(cfg).(*Breaker)
	assert.True(t, isBreaker)

	t.Setenv("PROFTEST_PROFILES_BREAKER", "false")
	c, isClient := FromConf(cfg).(*Client)
	require.True(t, isClient)
	assert.Equal(t, "http://repo:8080/alfresco/service", c.opts.BaseURL)
}
