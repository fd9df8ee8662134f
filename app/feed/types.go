package feed

import (
	"time"
)

// Meta contains metadata about a parsed feed.
type Meta struct {
	Title string
	Link  string
}

// MediaHint is a single image candidate attached to an entry, in
// document order (enclosures before media tags before inline images).
type MediaHint struct {
	URL      string
	Width    int
	Height   int
	MIMEType string
}

// Entry is a raw post-parse, pre-normalize record. Field names and
// encodings still reflect whatever the upstream format provided.
type Entry struct {
	Title        string
	Link         string
	PublishedRaw string
	PublishedAt  *time.Time
	BodyHTML     string
	MediaHints   []MediaHint
	FeedURL      string
}

// Item is the canonical record carried through aggregation and
// serialized to clients.
type Item struct {
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"date"`
	Image       string    `json:"image"`
	Summary     string    `json:"summary"`
	ExcerptHTML string    `json:"excerpt_html,omitempty"`
}
