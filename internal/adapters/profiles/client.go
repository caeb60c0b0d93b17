// Package profiles looks up site profiles on the repository tier
// a lookup either yields a validated Profile or an error; callers treat any error as "no profile"
package profiles

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "sitesearch/internal/platform/errors"
	"sitesearch/internal/platform/logger"
	"sitesearch/internal/platform/net/http/bind"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultUA        = "sitesearch"
	defaultRetryBase = 100 * time.Millisecond
	maxBody          = 1 << 20
)

// Profile is the subset of the site profile the page needs
type Profile struct {
	ShortName string `json:"shortName" validate:"required_without=Title"`
	Title     string `json:"title"`
}

// Source resolves a site id to its profile
type Source interface {
	SiteProfile(ctx context.Context, siteID string) (Profile, error)
}

// Options configures the Client
type Options struct {
	BaseURL   string // e.g. http://repo:8080/alfresco/service
	UserAgent string
	Timeout   time.Duration

	// MaxRetries applies to transport errors and 502/503/504/429 only
	MaxRetries int
	RetryBase  time.Duration
}

// Client fetches profiles over HTTP
type Client struct {
	http  *http.Client
	opts  Options
	log   *logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a Client with defaults applied
func NewClient(o Options) *Client {
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   logger.Named("profiles"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// SiteProfile issues GET /api/sites/{siteID}
// the body is decoded into Profile with type checking and then validated; content is never evaluated
func (c *Client) SiteProfile(ctx context.Context, siteID string) (Profile, error) {
	if strings.TrimSpace(siteID) == "" {
		return Profile{}, perr.InvalidArgf("site id is required")
	}
	path := "/api/sites/" + url.PathEscape(siteID)

	resp, err := c.do(ctx, path)
	if err != nil {
		return Profile{}, perr.WithOp(err, "profiles.SiteProfile")
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	p, err := bind.DecodeJSON[Profile](resp.Body, bind.JSONOptions{MaxBytes: maxBody})
	if err != nil {
		return Profile{}, perr.WithOp(err, "profiles.SiteProfile")
	}
	return p, nil
}

// Ping reports whether the repository answers at all
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, "/api/server")
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) || perr.IsCode(err, perr.ErrorCodeUpstream) {
			return nil
		}
		return err
	}
	return drainAndClose(resp.Body)
}

// do returns a 2xx response or a coded error, retrying transient failures
func (c *Client) do(ctx context.Context, path string) (*http.Response, error) {
	u := c.opts.BaseURL + path
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "build profile request")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempt < c.opts.MaxRetries {
				c.backoff(attempt, "transport error")
				continue
			}
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "profile service unreachable")
		}

		c.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempt).
			Dur("latency", lat).
			Msg("profile http response")

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		statusErr := statusError(resp)
		if perr.Retryable(statusErr) && attempt < c.opts.MaxRetries {
			c.backoff(attempt, "transient status")
			continue
		}
		return nil, statusErr
	}
}

func (c *Client) backoff(attempt int, why string) {
	d := c.opts.RetryBase << uint(attempt)
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	c.log.Warn().Dur("retry_in", d).Int("attempt", attempt).Msg("profile lookup retrying after " + why)
	c.sleep(d)
}

// statusError maps a non-2xx response to a coded error and closes the body
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	_ = resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusNotFound:
		return perr.NotFoundf("site profile not found")
	case http.StatusTooManyRequests:
		return perr.New(perr.ErrorCodeTooManyRequests, "profile service rate limited")
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return perr.Unavailablef("profile service status %d", resp.StatusCode)
	default:
		return perr.Upstreamf("profile service status %d body %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, maxBody))
	return rc.Close()
}
