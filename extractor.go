package sitekb

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title: <title> when present, the first <h1>
	// otherwise, else a placeholder.
	Title string

	// Text is the cleaned visible text with boilerplate
	// (scripts, navigation, cookie banners) removed.
	Text string
}

// Extractor extracts the title and clean visible text from raw HTML.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// LinkExtractor extracts outbound links from raw HTML. Returned links are
// absolute, resolved against baseURL, with URL fragments stripped.
type LinkExtractor interface {
	ExtractLinks(html string, baseURL string) ([]string, error)
}
