package mock

import (
	"context"

	"github.com/fwojciec/camseed"
)

var _ camseed.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of camseed.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ camseed.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of camseed.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ camseed.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of camseed.ListingParser.
type ListingParser struct {
	ParseFn func(html, baseURL string) ([]camseed.TextBlock, error)
}

func (p *ListingParser) Parse(html, baseURL string) ([]camseed.TextBlock, error) {
	return p.ParseFn(html, baseURL)
}
