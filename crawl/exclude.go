package crawl

import (
	"net/url"
	"strings"
)

// excludedPaths lists path substrings that mark a URL as out of scope:
// auth flows, commerce pages, boilerplate legal pages, and binary assets.
var excludedPaths = []string{
	"/login", "/signin", "/sign-in", "/auth",
	"/signup", "/sign-up", "/register", "/registration",
	"/cart", "/checkout", "/shop", "/store",
	"/admin", "/dashboard",
	"/privacy", "/terms", "/legal",
	"/contact", "/support/contact",
	"/search",
	".pdf", ".jpg", ".png", ".gif", ".zip",
}

// ShouldSkip reports whether u is excluded from crawling. A URL is skipped
// when its path contains any excluded substring, or when its query string
// contains "page", a heuristic for paginated duplicate content.
func ShouldSkip(u *url.URL) bool {
	path := strings.ToLower(u.Path)
	for _, excluded := range excludedPaths {
		if strings.Contains(path, excluded) {
			return true
		}
	}
	if u.RawQuery != "" && strings.Contains(strings.ToLower(u.RawQuery), "page") {
		return true
	}
	return false
}
