package feed

import (
	"net/url"
	"strings"
)

// AbsoluteURL resolves raw against the first usable base. Protocol-relative
// URLs are upgraded to https, data: URIs are rejected outright, and an
// unresolvable URL is returned unchanged rather than dropped.
func AbsoluteURL(raw string, bases ...string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "data:") {
		return ""
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if parsed.IsAbs() {
		return raw
	}

	for _, base := range bases {
		if base == "" {
			continue
		}
		baseURL, err := url.Parse(base)
		if err != nil || !baseURL.IsAbs() {
			continue
		}
		return baseURL.ResolveReference(parsed).String()
	}

	return raw
}

// Host extracts the lowercased hostname from a link, or "unknown" when
// the link cannot be parsed.
func Host(link string) string {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(parsed.Hostname())
}
