package validate

import (
	"fmt"
	"net/url"
)

// FaviconURL derives an icon URL from the bookmark URL's domain using the
// /favicon.ico convention. Returns "" for URLs without a host.
func FaviconURL(normalized string) string {
	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Host == "" {
		return ""
	}
	scheme := parsed.Scheme
	if scheme != "http" && scheme != "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/favicon.ico", scheme, parsed.Host)
}
