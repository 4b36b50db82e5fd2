package preview

import (
	"net/url"
	"strings"
)

// FirstURL returns the first http(s) URL found in a post body, or ""
// when the body carries none. Only the first URL gets a preview.
func FirstURL(body string) string {
	for _, field := range strings.Fields(body) {
		if !strings.HasPrefix(field, "http://") && !strings.HasPrefix(field, "https://") {
			continue
		}
		// Trailing sentence punctuation is part of the prose, not the URL.
		candidate := strings.TrimRight(field, ".,;:!?)\"'")
		u, err := url.Parse(candidate)
		if err != nil || u.Host == "" {
			continue
		}
		return candidate
	}
	return ""
}
