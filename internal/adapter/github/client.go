package github

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	github_ratelimit "github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
)

// Client talks to the GitHub REST API on behalf of the review commands.
type Client struct {
	read   *gh.Client
	write  *gh.Client
	logger *slog.Logger
}

// Options configures a Client.
type Options struct {
	// Token authenticates every request. Resolve it with ResolveToken.
	Token string

	// BaseURL overrides the API endpoint, for GitHub Enterprise
	// installations. Empty means api.github.com.
	BaseURL string

	// Cache stores conditional-request responses for the read path.
	// Nil disables caching.
	Cache httpcache.Cache

	// Logger receives debug output. Nil falls back to slog.Default.
	Logger *slog.Logger
}

// NewClient builds the read and write API clients.
//
// Reads go through an httpcache transport (conditional requests keep
// repeated listings cheap) and a rate-limit-aware client that waits out
// secondary rate limits. Writes bypass both: a replayed mutation could
// double-post a review comment, so the write transport carries
// authentication and nothing else.
func NewClient(opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var readBase http.RoundTripper
	if opts.Cache != nil {
		cached := httpcache.NewTransport(opts.Cache)
		cached.MarkCachedResponses = true
		readBase = cached
	}
	readHTTP := github_ratelimit.NewClient(readBase)
	read := gh.NewClient(readHTTP).WithAuthToken(opts.Token)

	write := gh.NewClient(nil).WithAuthToken(opts.Token)

	if opts.BaseURL != "" {
		base, err := parseBaseURL(opts.BaseURL)
		if err != nil {
			return nil, err
		}
		read.BaseURL = base
		write.BaseURL = base
	}

	return &Client{read: read, write: write, logger: logger}, nil
}

// NewClientWithHTTPClient builds a Client whose read and write paths
// share one HTTP client and endpoint. Tests use this to point the
// adapter at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	read := gh.NewClient(httpClient)
	read.BaseURL = base
	write := gh.NewClient(httpClient)
	write.BaseURL = base

	return &Client{
		read:   read,
		write:  write,
		logger: slog.New(slog.DiscardHandler),
	}, nil
}

// parseBaseURL validates an endpoint override. go-github requires the
// base URL to end in a slash.
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse API base URL %q: %w", raw, err)
	}
	return base, nil
}

func (c *Client) logCall(op string, resp *gh.Response) {
	if resp == nil {
		return
	}
	c.logger.Debug("github api call",
		"op", op,
		"status", resp.StatusCode,
		"rate_remaining", resp.Rate.Remaining,
	)
}
