package aggregate

import (
	"math"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/capeworks/feedhub/app/feed"
)

// CanonicalURL reduces a link to scheme+host+path, lowercased, with
// query string and fragment dropped. Two links differing only in
// tracking parameters canonicalize identically.
func CanonicalURL(link string) string {
	parsed, err := url.Parse(strings.TrimSpace(link))
	if err != nil || parsed.Host == "" {
		return strings.ToLower(strings.TrimSpace(link))
	}
	return strings.ToLower(parsed.Scheme + "://" + parsed.Host + parsed.Path)
}

// Dedup keeps the first item for each canonicalized link.
func Dedup(items []feed.Item) []feed.Item {
	seen := make(map[string]bool, len(items))
	kept := make([]feed.Item, 0, len(items))
	for _, item := range items {
		key := CanonicalURL(item.Link)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, item)
	}
	return kept
}

// SortByDate orders items newest first. The sort is stable so that
// items sharing a timestamp keep their source order.
func SortByDate(items []feed.Item) {
	slices.SortStableFunc(items, func(a, b feed.Item) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
}

// Rank scores each item by Atlantic-region relevance, source weight,
// and age, then orders by score descending with publish date as the
// tie-breaker. Each region term found in the title or excerpt is worth
// ten points; age subtracts ln(days+1) so recency helps without ever
// burying a strongly relevant older item.
func Rank(items []feed.Item, weights map[string]float64, terms []string, now time.Time) {
	scores := make(map[string]float64, len(items))
	for _, item := range items {
		haystack := strings.ToLower(item.Title + " " + rankText(item))
		hits := 0
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				hits++
			}
		}
		ageDays := math.Max(1, now.Sub(item.PublishedAt).Hours()/24)
		scores[scoreKey(item)] = float64(hits*10) + weights[item.Source] - math.Log(ageDays+1)
	}

	slices.SortStableFunc(items, func(a, b feed.Item) int {
		sa, sb := scores[scoreKey(a)], scores[scoreKey(b)]
		if sa != sb {
			if sa > sb {
				return -1
			}
			return 1
		}
		return b.PublishedAt.Compare(a.PublishedAt)
	})
}

func scoreKey(item feed.Item) string {
	return item.Link + "\x00" + item.Title
}

func rankText(item feed.Item) string {
	if item.ExcerptHTML != "" {
		return feed.StripHTML(item.ExcerptHTML)
	}
	return item.Summary
}

// CapPerHost walks the ordered list and skips items once their host has
// contributed max items, so one prolific outlet cannot dominate.
func CapPerHost(items []feed.Item, max int) []feed.Item {
	if max <= 0 {
		return items
	}
	counts := make(map[string]int)
	kept := make([]feed.Item, 0, len(items))
	for _, item := range items {
		host := feed.Host(item.Link)
		if counts[host] >= max {
			continue
		}
		counts[host]++
		kept = append(kept, item)
	}
	return kept
}

// Limit truncates to at most n items.
func Limit(items []feed.Item, n int) []feed.Item {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
