package mock

import "github.com/sitekb/sitekb"

var _ sitekb.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitekb.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sitekb.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*sitekb.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ sitekb.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of sitekb.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
