// Package trafilatura provides an alternative sitekb.Extractor built on
// go-trafilatura's content extraction. Compared to the goquery extractor it
// is better at isolating main content on article-like pages, at the cost of
// discarding more page chrome.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/sitekb/sitekb"
)

// Ensure Extractor implements sitekb.Extractor at compile time.
var _ sitekb.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract titles and main text from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main text.
func (e *Extractor) Extract(rawHTML string) (*sitekb.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &sitekb.ExtractResult{Title: "No title found"}, nil
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, sitekb.Errorf(sitekb.EINVALID, "content extraction failed: %v", err)
	}

	title := strings.TrimSpace(result.Metadata.Title)
	if title == "" {
		title = "No title found"
	}

	return &sitekb.ExtractResult{
		Title: title,
		Text:  strings.TrimSpace(result.ContentText),
	}, nil
}
