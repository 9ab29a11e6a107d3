package main

import (
	"fmt"

	"github.com/fwojciec/camseed"
	"github.com/fwojciec/camseed/crawl"
	"github.com/fwojciec/camseed/goquery"
	camseedhttp "github.com/fwojciec/camseed/http"
	"github.com/fwojciec/camseed/rod"
	camslog "github.com/fwojciec/camseed/slog"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if err := deps.Output.validate(); err != nil {
		return err
	}

	if crawl.DomainOf(c.URL) == c.URL {
		return camseed.Errorf(camseed.EINVALID, "invalid listing URL: %q", c.URL)
	}

	var fetcher camseed.Fetcher
	if c.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout), rod.WithUserAgent(c.UserAgent))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = camseedhttp.NewFetcher(camseedhttp.WithTimeout(c.Timeout), camseedhttp.WithUserAgent(c.UserAgent))
	}
	fetcher = camslog.NewLoggingFetcher(fetcher, deps.Logger)
	defer fetcher.Close()

	pager := &crawl.Pager{
		BaseURL: c.URL,
		Fetcher: fetcher,
		Parser:  goquery.NewListingParser(),
		Limiter: crawl.NewDomainLimiter(c.Rate),
		Logger:  deps.Logger,
	}

	return deps.harvest(pager, c.URL, c.MaxPages)
}
