// Package goquery provides HTML processing built on CSS selectors: cleaning
// page HTML to visible text, extracting titles, and extracting outbound
// links.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitekb/sitekb"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitekb.Extractor at compile time.
var _ sitekb.Extractor = (*Extractor)(nil)

// DefaultTitle is the placeholder used when a page has neither a <title>
// nor an <h1>.
const DefaultTitle = "No title found"

// noiseRe matches class and id values of cookie banners, popups and similar
// overlay elements that carry no page content.
var noiseRe = regexp.MustCompile(`(?i)cookie|banner|popup|modal|consent|notification`)

// multiSpaceRe collapses runs of spaces within a line.
var multiSpaceRe = regexp.MustCompile(` +`)

// Extractor extracts the title and clean visible text from raw HTML.
// Scripts, styles, navigation chrome, cookie banners and embedded frames are
// stripped; the remaining visible text is returned one trimmed line per
// text node.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and cleaned text.
func (e *Extractor) Extract(rawHTML string) (*sitekb.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, sitekb.Errorf(sitekb.EINVALID, "failed to parse HTML: %v", err)
	}

	title := extractTitle(doc)

	doc.Find("script, style, noscript, meta, link").Remove()
	doc.Find("nav, header, footer").Remove()
	doc.Find("iframe, embed").Remove()

	removeNoise := func(attr string) {
		doc.Find("[" + attr + "]").Each(func(_ int, sel *goquery.Selection) {
			if value, ok := sel.Attr(attr); ok && noiseRe.MatchString(value) {
				sel.Remove()
			}
		})
	}
	removeNoise("class")
	removeNoise("id")

	return &sitekb.ExtractResult{
		Title: title,
		Text:  visibleText(doc),
	}, nil
}

// extractTitle returns the page title, preferring <title> over the first
// <h1>, falling back to DefaultTitle.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return DefaultTitle
}

// visibleText collects the document's text nodes in order, trims each, and
// joins the non-empty ones with newlines.
func visibleText(doc *goquery.Document) string {
	var lines []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			line := strings.TrimSpace(multiSpaceRe.ReplaceAllString(n.Data, " "))
			if line != "" {
				lines = append(lines, line)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	body := doc.Find("body")
	if len(body.Nodes) == 0 {
		// Fragments without a <body> still carry text nodes.
		for _, n := range doc.Nodes {
			walk(n)
		}
	} else {
		for _, n := range body.Nodes {
			walk(n)
		}
	}

	return strings.Join(lines, "\n")
}
