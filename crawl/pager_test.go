package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/fwojciec/camseed"
	"github.com/fwojciec/camseed/crawl"
	"github.com/fwojciec/camseed/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoParser yields one block whose Text is the fetched HTML.
func echoParser() *mock.ListingParser {
	return &mock.ListingParser{
		ParseFn: func(html, baseURL string) ([]camseed.TextBlock, error) {
			if html == "" {
				return nil, nil
			}
			return []camseed.TextBlock{{Title: html, Text: html, URL: baseURL}}, nil
		},
	}
}

func TestStrategies(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://www.summitracing.com/search/part-type/camshafts?fr=make")
	require.NoError(t, err)

	var got []string
	for _, s := range crawl.DefaultStrategies() {
		got = append(got, s.URL(base, 3, 25))
	}

	assert.Equal(t, []string{
		"https://www.summitracing.com/search/part-type/camshafts?fr=make&page=3",
		"https://www.summitracing.com/search/part-type/camshafts?fr=make&pageNumber=3",
		"https://www.summitracing.com/search/part-type/camshafts?fr=make&pageIndex=3",
		"https://www.summitracing.com/search/part-type/camshafts?fr=make&start=50",
	}, got)
}

func TestPager_Page(t *testing.T) {
	t.Parallel()

	t.Run("fetches bare URL for page 1", func(t *testing.T) {
		t.Parallel()

		var fetched []string
		p := &crawl.Pager{
			BaseURL: "https://example.com/cams",
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, u string) (string, error) {
				fetched = append(fetched, u)
				return "page one", nil
			}},
			Parser:      echoParser(),
			RetryDelays: []time.Duration{},
		}

		blocks, err := p.Page(context.Background(), 1)

		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, []string{"https://example.com/cams"}, fetched)
		assert.Equal(t, "https://example.com/cams", blocks[0].URL)
	})

	t.Run("tries strategies in order and pins the one that works", func(t *testing.T) {
		t.Parallel()

		var fetched []string
		p := &crawl.Pager{
			BaseURL: "https://example.com/cams",
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, u string) (string, error) {
				fetched = append(fetched, u)
				parsed, _ := url.Parse(u)
				if n := parsed.Query().Get("pageIndex"); n != "" {
					return "page " + n, nil
				}
				return "", nil
			}},
			Parser:      echoParser(),
			RetryDelays: []time.Duration{},
		}

		blocks, err := p.Page(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, "page 2", blocks[0].Text)
		assert.Equal(t, []string{
			"https://example.com/cams?page=2",
			"https://example.com/cams?pageNumber=2",
			"https://example.com/cams?pageIndex=2",
		}, fetched)

		fetched = nil
		blocks, err = p.Page(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, "page 3", blocks[0].Text)
		assert.Equal(t, []string{"https://example.com/cams?pageIndex=3"}, fetched)
	})

	t.Run("returns empty when no strategy yields blocks", func(t *testing.T) {
		t.Parallel()

		p := &crawl.Pager{
			BaseURL:     "https://example.com/cams",
			Fetcher:     &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) { return "", nil }},
			Parser:      echoParser(),
			RetryDelays: []time.Duration{},
		}

		blocks, err := p.Page(context.Background(), 5)

		require.NoError(t, err)
		assert.Empty(t, blocks)
	})

	t.Run("returns error when every fetch fails", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("HTTP 503")
		calls := 0
		p := &crawl.Pager{
			BaseURL: "https://example.com/cams",
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
				calls++
				return "", boom
			}},
			Parser:      echoParser(),
			RetryDelays: []time.Duration{0},
		}

		_, err := p.Page(context.Background(), 2)

		require.ErrorIs(t, err, boom)
		// Four strategies, two attempts each.
		assert.Equal(t, 8, calls)
	})

	t.Run("falls through a failing strategy", func(t *testing.T) {
		t.Parallel()

		p := &crawl.Pager{
			BaseURL: "https://example.com/cams",
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, u string) (string, error) {
				if u == "https://example.com/cams?page=2" {
					return "", errors.New("HTTP 500")
				}
				return "ok " + u, nil
			}},
			Parser:      echoParser(),
			RetryDelays: []time.Duration{},
		}

		blocks, err := p.Page(context.Background(), 2)

		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, "ok https://example.com/cams?pageNumber=2", blocks[0].Text)
	})

	t.Run("waits on the limiter per domain", func(t *testing.T) {
		t.Parallel()

		var domains []string
		p := &crawl.Pager{
			BaseURL: "https://WWW.Example.com/cams",
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) { return "x", nil }},
			Parser:  echoParser(),
			Limiter: &mock.DomainLimiter{WaitFn: func(_ context.Context, d string) error {
				domains = append(domains, d)
				return nil
			}},
			RetryDelays: []time.Duration{},
		}

		_, err := p.Page(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, []string{"www.example.com"}, domains)
	})

	t.Run("returns limiter error on cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := &crawl.Pager{
			BaseURL: "https://example.com/cams",
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) { return "x", nil }},
			Parser:  echoParser(),
			Limiter: crawl.NewDomainLimiter(1),
		}

		_, err := p.Page(ctx, 1)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("uses offset strategy with custom page size", func(t *testing.T) {
		t.Parallel()

		var fetched string
		p := &crawl.Pager{
			BaseURL:    "https://example.com/cams",
			Strategies: []crawl.Strategy{crawl.Offset("start")},
			PerPage:    50,
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, u string) (string, error) {
				fetched = u
				return "x", nil
			}},
			Parser:      echoParser(),
			RetryDelays: []time.Duration{},
		}

		_, err := p.Page(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/cams?start=100", fetched)
	})

	t.Run("rejects relative base URL", func(t *testing.T) {
		t.Parallel()

		p := &crawl.Pager{BaseURL: "/cams", Fetcher: &mock.Fetcher{}, Parser: echoParser()}

		_, err := p.Page(context.Background(), 1)

		assert.Equal(t, camseed.EINVALID, camseed.ErrorCode(err))
	})

	t.Run("returns parser error", func(t *testing.T) {
		t.Parallel()

		p := &crawl.Pager{
			BaseURL: "https://example.com/cams",
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) { return "x", nil }},
			Parser: &mock.ListingParser{ParseFn: func(_, _ string) ([]camseed.TextBlock, error) {
				return nil, fmt.Errorf("bad html")
			}},
			RetryDelays: []time.Duration{},
		}

		_, err := p.Page(context.Background(), 1)

		require.EqualError(t, err, "page 1: bad html")
	})
}
