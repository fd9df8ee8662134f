package aggregate

import (
	"regexp"
	"strings"

	"github.com/capeworks/feedhub/app/feed"
)

// Filter reports whether an item should be kept.
type Filter func(feed.Item) bool

// Apply keeps only items every filter accepts, preserving order.
func Apply(items []feed.Item, filters ...Filter) []feed.Item {
	kept := make([]feed.Item, 0, len(items))
	for _, item := range items {
		ok := true
		for _, filter := range filters {
			if !filter(item) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, item)
		}
	}
	return kept
}

var corporateHRKeywords = []string{
	"appoint", "appointment", "appointed", "joins as", "join as", "chief executive",
	"chief financial", "chief operating", "ceo", "cfo", "coo", "president",
	"vice president", "vp ", "board of directors", "director of", "promoted",
	"promotion", "hires", "hired", "obituary", "sponsored", "q&a:", "q & a",
	"anniversary", "milestone", "in memoriam",
}

var sexualContentKeywords = []string{
	"sexual", "voyeur", "voyeurism", "sex offender", "sex-related", "sex related",
	"porn", "pornography", "explicit", "luring", "child exploit", "child pornography",
	"rape", "indecent", "inappropriate touching", "grooming", "in camera in washroom",
}

var trafficPhrases = []string{
	"traffic advisory", "traffic alert", "traffic delays", "traffic update",
	"road closure", "lane closure", "lane reduction", "detour", "bridge closure",
	"bridge repairs", "roadwork", "road work", "paving", "maintenance work",
	"closed to traffic", "reduced to one lane",
}

// Catches "closure on Hwy 104" style phrasing the fixed phrase list misses.
var trafficHeuristicRe = regexp.MustCompile(`(?i)\b(closure|closed|detour)\b.*\b(hwy|highway|route|trunk|ns-\d+)\b`)

var capeBretonPlaces = []string{
	"cape breton", "cbrm", "sydney", "glace bay", "north sydney", "sydney mines",
	"new waterford", "louisbourg", "baddeck", "eskasoni", "membertou",
	"ingonish", "whycocomagh", "port hawkesbury", "inverness", "mabou",
	"st. peter", "arichat", "isle madame",
}

// AtlanticTerms are the region keywords the ranking rewards.
var AtlanticTerms = []string{
	"cape breton", "sydney", "nova scotia", "halifax", "dartmouth", "antigonish",
	"newfoundland", "new brunswick", "pei", "prince edward island", "atlantic canada",
	"cbrm", "port hawkesbury", "glace bay", "stellarton", "truro", "bridgewater", "yarmouth",
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// ExcludeCorporateHR drops executive appointment and HR fluff items.
// Only the title is examined.
func ExcludeCorporateHR(item feed.Item) bool {
	return !containsAny(strings.ToLower(item.Title), corporateHRKeywords)
}

// ExcludeSexualContent drops items whose title or summary mentions
// sexual offences or explicit material.
func ExcludeSexualContent(item feed.Item) bool {
	haystack := strings.ToLower(item.Title + " " + item.Summary)
	return !containsAny(haystack, sexualContentKeywords)
}

// ExcludeTrafficOutsideCapeBreton drops traffic advisories unless they
// mention Cape Breton or CBRM. The link participates in the place check
// because regional outlets often put the locality in the URL slug only.
func ExcludeTrafficOutsideCapeBreton(item feed.Item) bool {
	haystack := strings.ToLower(item.Title + " " + item.Summary)
	traffic := containsAny(haystack, trafficPhrases) || trafficHeuristicRe.MatchString(haystack)
	if !traffic {
		return true
	}
	return containsAny(strings.ToLower(item.Title+" "+item.Summary+" "+item.Link), capeBretonPlaces)
}
