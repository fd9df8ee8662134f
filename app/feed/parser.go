package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"strconv"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run detects the payload format (RSS, Atom, or JSON feed) and extracts
// raw entries. An unrecognized format yields no entries and no error:
// a payload this service cannot read is treated the same as a source
// that returned nothing.
func (p *Parser) Run(data []byte, feedURL string) (*Meta, []Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, nil
	}

	if gofeed.DetectFeedType(bytes.NewReader(data)) == gofeed.FeedTypeUnknown {
		return nil, nil, nil
	}

	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	meta := &Meta{
		Title: parsed.Title,
		Link:  parsed.Link,
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entry := p.toEntry(item, feedURL)
		if entry.Title == "" && entry.Link == "" {
			continue
		}
		entries = append(entries, entry)
	}

	return meta, entries, nil
}

func (p *Parser) toEntry(item *gofeed.Item, feedURL string) Entry {
	link := item.Link
	if link == "" && len(item.Links) > 0 {
		link = item.Links[0]
	}

	// Richer body fields win: content:encoded/content over
	// description/summary.
	body := cmp.Or(item.Content, item.Description)

	entry := Entry{
		Title:        item.Title,
		Link:         link,
		PublishedRaw: cmp.Or(item.Published, item.Updated),
		BodyHTML:     body,
		FeedURL:      feedURL,
	}

	if item.PublishedParsed != nil {
		entry.PublishedAt = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		entry.PublishedAt = item.UpdatedParsed
	}

	entry.MediaHints = p.collectMediaHints(item, body)

	return entry
}

// collectMediaHints gathers image candidates in document order:
// enclosures, then media:content/media:thumbnail tags, then the item's
// own image, then inline <img> tags from the body.
func (p *Parser) collectMediaHints(item *gofeed.Item, body string) []MediaHint {
	var hints []MediaHint

	for _, enclosure := range item.Enclosures {
		if enclosure == nil || enclosure.URL == "" {
			continue
		}
		hints = append(hints, MediaHint{
			URL:      enclosure.URL,
			MIMEType: enclosure.Type,
		})
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, key := range []string{"content", "thumbnail"} {
			for _, tag := range media[key] {
				u := tag.Attrs["url"]
				if u == "" {
					continue
				}
				hints = append(hints, MediaHint{
					URL:      u,
					Width:    atoi(tag.Attrs["width"]),
					Height:   atoi(tag.Attrs["height"]),
					MIMEType: tag.Attrs["type"],
				})
			}
		}
	}

	if item.Image != nil && item.Image.URL != "" {
		hints = append(hints, MediaHint{URL: item.Image.URL})
	}

	hints = append(hints, InlineImages(body)...)

	return hints
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
