// Package crawl pages through live retailer listings.
// It builds paginated listing URLs, throttles requests per domain,
// retries failed fetches with backoff, and parses each page into blocks.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/camseed"
)

// DefaultPerPage is the page size assumed by offset-based pagination.
const DefaultPerPage = 25

// Strategy builds the URL for a 1-based page of a listing.
type Strategy struct {
	Name string
	URL  func(base *url.URL, page, perPage int) string
}

// QueryParam returns a strategy that sets param to the page number.
func QueryParam(param string) Strategy {
	return Strategy{
		Name: param,
		URL: func(base *url.URL, page, _ int) string {
			return withQuery(base, param, page)
		},
	}
}

// Offset returns a strategy that sets param to the zero-based offset of
// the page's first item.
func Offset(param string) Strategy {
	return Strategy{
		Name: param,
		URL: func(base *url.URL, page, perPage int) string {
			return withQuery(base, param, (page-1)*perPage)
		},
	}
}

// DefaultStrategies returns the pagination schemes tried in order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		QueryParam("page"),
		QueryParam("pageNumber"),
		QueryParam("pageIndex"),
		Offset("start"),
	}
}

func withQuery(base *url.URL, param string, value int) string {
	u := *base
	q := u.Query()
	q.Set(param, strconv.Itoa(value))
	u.RawQuery = q.Encode()
	return u.String()
}

var _ camseed.BlockSource = (*Pager)(nil)

// Pager is a BlockSource over a live paginated listing.
//
// Each page is requested with the pagination strategies in order until one
// yields blocks. Once a strategy works past page 1 it is used alone for later
// pages. Pager is not safe for concurrent use.
type Pager struct {
	BaseURL     string
	Fetcher     camseed.Fetcher
	Parser      camseed.ListingParser
	Limiter     camseed.DomainLimiter
	Strategies  []Strategy
	PerPage     int
	RetryDelays []time.Duration
	Logger      *slog.Logger

	pinned *Strategy
}

// Page fetches and parses the given 1-based page. It returns an empty slice
// when no strategy produces blocks, and the last fetch error when every
// attempt failed.
func (p *Pager) Page(ctx context.Context, n int) ([]camseed.TextBlock, error) {
	if n < 1 {
		return nil, nil
	}
	base, err := url.Parse(p.BaseURL)
	if err != nil || base.Host == "" {
		return nil, camseed.Errorf(camseed.EINVALID, "invalid listing URL: %q", p.BaseURL)
	}

	var lastErr error
	var fetched bool
	for _, c := range p.candidates(base, n) {
		blocks, err := p.fetchPage(ctx, c.url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			p.logger().Warn("page failed", "page", n, "url", c.url, "err", err)
			continue
		}
		fetched = true
		if len(blocks) == 0 {
			continue
		}
		if n > 1 && c.strategy != nil && p.pinned == nil {
			s := *c.strategy
			p.pinned = &s
			p.logger().Debug("pagination detected", "strategy", s.Name)
		}
		return blocks, nil
	}

	if !fetched && lastErr != nil {
		return nil, fmt.Errorf("page %d: %w", n, lastErr)
	}
	return nil, nil
}

type candidate struct {
	url      string
	strategy *Strategy
}

func (p *Pager) candidates(base *url.URL, n int) []candidate {
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	var out []candidate
	seen := make(map[string]bool)
	add := func(u string, s *Strategy) {
		if seen[u] {
			return
		}
		seen[u] = true
		out = append(out, candidate{url: u, strategy: s})
	}

	if n == 1 {
		add(base.String(), nil)
	}
	if p.pinned != nil {
		add(p.pinned.URL(base, n, perPage), p.pinned)
		return out
	}

	strategies := p.Strategies
	if strategies == nil {
		strategies = DefaultStrategies()
	}
	for i := range strategies {
		add(strategies[i].URL(base, n, perPage), &strategies[i])
	}
	return out
}

func (p *Pager) fetchPage(ctx context.Context, pageURL string) ([]camseed.TextBlock, error) {
	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx, DomainOf(pageURL)); err != nil {
			return nil, err
		}
	}

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, pageURL, p.Fetcher.Fetch, delays, func(u string, attempt int, err error) {
		p.logger().Debug("retry", "url", u, "attempt", attempt, "err", err)
	})
	if err != nil {
		return nil, err
	}

	return p.Parser.Parse(html, pageURL)
}

func (p *Pager) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}
