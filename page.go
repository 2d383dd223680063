package sitekb

import "context"

// Page is a successfully fetched, cleaned, in-scope page. The URL is
// canonical (fragment-stripped). Pages are immutable after creation and are
// owned by the crawler until handed to the ingestion pipeline; they are
// never persisted.
type Page struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	TextLength int    `json:"textLength"`
}

// CrawlResult holds the outcome of one crawl invocation. CrawledURLs lists
// the URL of every collected page in collection order, so
// len(CrawledURLs) == len(Pages) and no URL appears twice.
type CrawlResult struct {
	Pages       []Page   `json:"pages"`
	CrawledURLs []string `json:"crawledUrls"`
}

// Crawler walks a site breadth-first starting from baseURL, staying on the
// base URL's host and within the depth and page limits. Individual fetch
// failures are skipped, never fatal to the crawl.
type Crawler interface {
	Crawl(ctx context.Context, baseURL string, maxPages, maxDepth int) (*CrawlResult, error)
}
