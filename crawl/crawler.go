// Package crawl implements a bounded breadth-first crawler over a single
// website. The crawler stays on the start URL's host, deduplicates URLs,
// and respects page-count and depth limits.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sitekb/sitekb"
)

// Compile-time interface verification.
var _ sitekb.Crawler = (*Crawler)(nil)

// target is a frontier entry: a canonical URL and its distance from the base.
type target struct {
	url   string
	depth int
}

// Crawler walks a site breadth-first, collecting cleaned page text.
// Fetch failures skip the affected URL and never abort the crawl.
type Crawler struct {
	fetcher     sitekb.Fetcher
	extractor   sitekb.Extractor
	links       sitekb.LinkExtractor
	logger      *slog.Logger
	concurrency int
	retryDelays []time.Duration
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithLogger sets the logger used for per-URL progress and skip messages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) { c.logger = logger }
}

// WithConcurrency sets the number of pages fetched in parallel within a
// breadth batch. Values below 1 are treated as 1 (sequential crawl).
func WithConcurrency(n int) Option {
	return func(c *Crawler) { c.concurrency = n }
}

// WithRetryDelays enables fetch retries with the given backoff delays.
// By default failed fetches are not retried.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Crawler) { c.retryDelays = delays }
}

// NewCrawler returns a Crawler that fetches with fetcher, cleans pages with
// extractor, and discovers outbound links with links.
func NewCrawler(fetcher sitekb.Fetcher, extractor sitekb.Extractor, links sitekb.LinkExtractor, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:     fetcher,
		extractor:   extractor,
		links:       links,
		logger:      slog.Default(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.concurrency < 1 {
		c.concurrency = 1
	}
	return c
}

// fetchResult pairs a frontier target with the outcome of its fetch.
type fetchResult struct {
	target target
	html   string
	err    error
}

// Crawl walks the site rooted at baseURL breadth-first and returns the
// collected pages. At most maxPages pages are returned and no link more
// than maxDepth hops from baseURL is fetched. URLs that fail to fetch or
// extract are skipped.
func (c *Crawler) Crawl(ctx context.Context, baseURL string, maxPages, maxDepth int) (*sitekb.CrawlResult, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, sitekb.Errorf(sitekb.EINVALID, "invalid base url: %q", baseURL)
	}

	start := canonicalize(base)
	frontier := []target{{url: start, depth: 0}}
	enqueued := map[string]bool{start: true}
	visited := make(map[string]bool)

	result := &sitekb.CrawlResult{}

	for len(frontier) > 0 && len(result.Pages) < maxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch := c.popBatch(&frontier, visited, maxDepth, maxPages-len(result.Pages))
		if len(batch) == 0 {
			continue
		}

		results := c.fetchBatch(ctx, batch)

		for _, fr := range results {
			if fr.err != nil {
				c.logger.Warn("skipping url", "url", fr.target.url, "error", fr.err)
				continue
			}
			c.processPage(fr, base, visited, enqueued, &frontier, result)
		}
	}

	return result, nil
}

// popBatch removes up to limit eligible targets from the front of the
// frontier. Visited URLs and targets beyond maxDepth are dropped here,
// at pop time, and marked visited so later frontier copies are ignored.
func (c *Crawler) popBatch(frontier *[]target, visited map[string]bool, maxDepth, limit int) []target {
	if limit > c.concurrency {
		limit = c.concurrency
	}

	var batch []target
	for len(*frontier) > 0 && len(batch) < limit {
		t := (*frontier)[0]
		*frontier = (*frontier)[1:]

		if visited[t.url] {
			continue
		}
		visited[t.url] = true

		if t.depth > maxDepth {
			continue
		}
		batch = append(batch, t)
	}
	return batch
}

// fetchBatch fetches every target in the batch concurrently and returns
// the outcomes in batch order. Individual failures are carried in the
// result, not returned as an error.
func (c *Crawler) fetchBatch(ctx context.Context, batch []target) []fetchResult {
	results := make([]fetchResult, len(batch))

	var g errgroup.Group
	for i, t := range batch {
		results[i].target = t
		g.Go(func() error {
			c.logger.Info("crawling", "url", t.url, "depth", t.depth)
			results[i].html, results[i].err = c.fetchOne(ctx, t.url)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// fetchOne fetches a single URL, retrying with the configured backoff
// delays when retries are enabled.
func (c *Crawler) fetchOne(ctx context.Context, url string) (string, error) {
	if len(c.retryDelays) == 0 {
		return c.fetcher.Fetch(ctx, url)
	}
	return FetchWithRetryDelays(ctx, url, c.fetcher.Fetch, c.logger, c.retryDelays)
}

// processPage extracts text from a fetched page, records it, and enqueues
// its in-scope outbound links.
func (c *Crawler) processPage(fr fetchResult, base *url.URL, visited, enqueued map[string]bool, frontier *[]target, result *sitekb.CrawlResult) {
	extracted, err := c.extractor.Extract(fr.html)
	if err != nil {
		c.logger.Warn("extraction failed", "url", fr.target.url, "error", err)
		return
	}

	result.Pages = append(result.Pages, sitekb.Page{
		URL:        fr.target.url,
		Title:      extracted.Title,
		Text:       extracted.Text,
		TextLength: len([]rune(extracted.Text)),
	})
	result.CrawledURLs = append(result.CrawledURLs, fr.target.url)

	links, err := c.links.ExtractLinks(fr.html, fr.target.url)
	if err != nil {
		c.logger.Warn("link extraction failed", "url", fr.target.url, "error", err)
		return
	}

	for _, link := range links {
		u, err := url.Parse(link)
		if err != nil || u.Host != base.Host {
			continue
		}
		canonical := canonicalize(u)
		if visited[canonical] || enqueued[canonical] || ShouldSkip(u) {
			continue
		}
		enqueued[canonical] = true
		*frontier = append(*frontier, target{url: canonical, depth: fr.target.depth + 1})
	}
}

// canonicalize returns u without its fragment.
func canonicalize(u *url.URL) string {
	c := *u
	c.Fragment = ""
	return c.String()
}
