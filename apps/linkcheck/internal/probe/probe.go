// Package probe decides which friend links are unreachable.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/imroc/req/v3"
	"golang.org/x/sync/errgroup"
)

// BrowserUserAgent is sent with every probe; some hosts reject unknown agents.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"

// DefaultAPIURL is the third-party reachability API used for the second pass.
const DefaultAPIURL = "https://api.nsmao.net/api/web/query"

// Config controls a Checker.
type Config struct {
	// Concurrency bounds in-flight probes per pass.
	Concurrency int
	Timeout     time.Duration
	// APIKey enables the second pass. Empty skips it.
	APIKey string
	APIURL string
}

// Checker probes links in two passes: a HEAD request to every link, then a
// query to the reachability API for each link the first pass flagged.
type Checker struct {
	client *req.Client
	cfg    Config
	log    *slog.Logger
}

// New builds a Checker. Zero values in cfg fall back to 10 probes, a 5s
// timeout and DefaultAPIURL.
func New(cfg Config, log *slog.Logger) *Checker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	client := req.C().
		SetUserAgent(BrowserUserAgent).
		SetTimeout(cfg.Timeout)
	return &Checker{client: client, cfg: cfg, log: log}
}

// Unreachable returns the subset of links that failed the HEAD pass and, when
// an API key is configured, were not cleared by the reachability API. A
// cancelled ctx makes every probe fail, so the partial result is discarded
// and ctx.Err() is returned instead.
func (c *Checker) Unreachable(ctx context.Context, links []string) (map[string]bool, error) {
	flagged := c.pass(ctx, links, func(ctx context.Context, link string) bool {
		return !c.head(ctx, link)
	})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("head pass interrupted: %w", err)
	}
	c.log.Info("head pass finished", "links", len(links), "flagged", len(flagged))

	if c.cfg.APIKey == "" || len(flagged) == 0 {
		return flagged, nil
	}

	pending := make([]string, 0, len(flagged))
	for link := range flagged {
		pending = append(pending, link)
	}
	confirmed := c.pass(ctx, pending, func(ctx context.Context, link string) bool {
		return !c.apiOK(ctx, link)
	})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("api pass interrupted: %w", err)
	}
	c.log.Info("api pass finished", "checked", len(pending), "unreachable", len(confirmed))
	return confirmed, nil
}

// pass runs failed over links with bounded concurrency and collects the links
// it reports true for.
func (c *Checker) pass(ctx context.Context, links []string, failed func(context.Context, string) bool) map[string]bool {
	var (
		mu  sync.Mutex
		out = make(map[string]bool)
		g   errgroup.Group
	)
	g.SetLimit(c.cfg.Concurrency)
	for _, link := range links {
		g.Go(func() error {
			if failed(ctx, link) {
				mu.Lock()
				out[link] = true
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // probes never return errors
	return out
}

// head reports whether link answers a HEAD request with 200.
func (c *Checker) head(ctx context.Context, link string) bool {
	resp, err := c.client.R().SetContext(ctx).Head(link)
	if err != nil {
		c.log.Debug("head failed", "link", link, "error", err)
		return false
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Debug("head returned non-200", "link", link, "status", resp.StatusCode)
		return false
	}
	return true
}

type apiResult struct {
	Status string `json:"status"`
}

// apiOK reports whether the reachability API answers with status "ok" for
// link. Transport errors and malformed replies count as not ok.
func (c *Checker) apiOK(ctx context.Context, link string) bool {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.cfg.APIKey).
		SetQueryParam("link", link).
		Get(c.cfg.APIURL)
	if err != nil {
		c.log.Debug("api check failed", "link", link, "error", err)
		return false
	}

	var result apiResult
	if err := resp.Unmarshal(&result); err != nil {
		c.log.Debug("api reply not json", "link", link, "error", err)
		return false
	}
	return result.Status == "ok"
}
