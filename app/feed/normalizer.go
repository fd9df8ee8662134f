package feed

import (
	"cmp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// SummaryLimit is the hard cap on excerpt length in runes.
const SummaryLimit = 300

type Normalizer struct {
	titlePlaceholder string
}

func NewNormalizer() *Normalizer {
	return &Normalizer{titlePlaceholder: "Untitled"}
}

// NewNormalizerWithPlaceholder uses a custom stand-in title for
// entries that arrive without one. Traffic advisories, for example,
// read better as "Traffic advisory" than "Untitled".
func NewNormalizerWithPlaceholder(placeholder string) *Normalizer {
	return &Normalizer{titlePlaceholder: placeholder}
}

// Run maps a raw entry into the canonical item shape. It returns false
// only when the entry has neither a title nor a link; everything else
// degrades to a placeholder instead of dropping the item.
func (n *Normalizer) Run(e Entry, sourceLabel string) (Item, bool) {
	title := StripHTML(e.Title)
	link := strings.TrimSpace(e.Link)

	if title == "" && link == "" {
		return Item{}, false
	}

	resolvedLink := AbsoluteURL(link, e.FeedURL)

	image := AbsoluteURL(SelectImage(e.MediaHints), resolvedLink, e.FeedURL)
	image = PreferOriginal(image)

	return Item{
		Source:      sourceLabel,
		Title:       cmp.Or(title, n.titlePlaceholder),
		Link:        cmp.Or(resolvedLink, "#"),
		PublishedAt: n.publishedAt(e),
		Image:       image,
		Summary:     Excerpt(e.BodyHTML, SummaryLimit),
	}, true
}

// publishedAt falls back to "now" for missing or unparseable dates, so
// an item is never dropped for date reasons alone. It may be mis-sorted
// instead, which the ranking's age dampening tolerates.
func (n *Normalizer) publishedAt(e Entry) time.Time {
	if e.PublishedAt != nil {
		return *e.PublishedAt
	}
	if e.PublishedRaw != "" {
		if parsed, err := dateparse.ParseAny(e.PublishedRaw); err == nil {
			return parsed
		}
	}
	return time.Now()
}
