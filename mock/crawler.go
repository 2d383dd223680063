package mock

import (
	"context"

	"github.com/sitekb/sitekb"
)

var _ sitekb.Crawler = (*Crawler)(nil)

// Crawler is a mock implementation of sitekb.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, baseURL string, maxPages, maxDepth int) (*sitekb.CrawlResult, error)
}

func (c *Crawler) Crawl(ctx context.Context, baseURL string, maxPages, maxDepth int) (*sitekb.CrawlResult, error) {
	return c.CrawlFn(ctx, baseURL, maxPages, maxDepth)
}
