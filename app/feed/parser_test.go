package feed

import (
	"strings"
	"testing"
)

const rssSample = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Test News</title>
    <link>https://news.example.com</link>
    <item>
      <title>First Story</title>
      <link>https://news.example.com/first</link>
      <pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
      <description>Short description</description>
      <content:encoded><![CDATA[<p>Rich content with an <img src="https://cdn.example.com/uploads/inline.jpg"> image.</p>]]></content:encoded>
      <enclosure url="https://cdn.example.com/uploads/hero.jpg" type="image/jpeg" length="12345"/>
      <media:content url="https://cdn.example.com/uploads/wide.jpg" width="1200" height="675" type="image/jpeg"/>
    </item>
    <item>
      <title></title>
      <link></link>
      <description>No title, no link</description>
    </item>
  </channel>
</rss>`

const atomSample = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Source</title>
  <link href="https://atom.example.com"/>
  <entry>
    <title type="html">Atom &amp; Entry</title>
    <link href="https://atom.example.com/entry-1"/>
    <updated>2024-03-10T12:00:00Z</updated>
    <summary>Atom summary text</summary>
  </entry>
</feed>`

const jsonFeedSample = `{
  "version": "https://jsonfeed.org/version/1",
  "title": "JSON Source",
  "items": [
    {
      "id": "1",
      "title": "JSON Item",
      "url": "https://json.example.com/item-1",
      "date_published": "2024-03-11T08:30:00Z",
      "image": "https://json.example.com/images/item-1.png",
      "content_html": "<p>JSON body</p>"
    }
  ]
}`

func TestParserRSS(t *testing.T) {
	parser := NewParser()

	meta, entries, err := parser.Run([]byte(rssSample), "https://news.example.com/rss")
	if err != nil {
		t.Fatal(err)
	}

	if meta.Title != "Test News" {
		t.Errorf("Expected feed title 'Test News', got '%s'", meta.Title)
	}

	// The title-less, link-less item is discarded.
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Title != "First Story" {
		t.Errorf("Unexpected title: %s", e.Title)
	}
	if e.Link != "https://news.example.com/first" {
		t.Errorf("Unexpected link: %s", e.Link)
	}
	if e.PublishedAt == nil {
		t.Error("Expected pubDate to be parsed")
	}
	if !strings.Contains(e.BodyHTML, "Rich content") {
		t.Errorf("Expected content:encoded to win over description, got: %s", e.BodyHTML)
	}
	if e.FeedURL != "https://news.example.com/rss" {
		t.Errorf("Unexpected feed URL: %s", e.FeedURL)
	}
}

func TestParserRSSMediaHints(t *testing.T) {
	parser := NewParser()

	_, entries, err := parser.Run([]byte(rssSample), "https://news.example.com/rss")
	if err != nil {
		t.Fatal(err)
	}

	hints := entries[0].MediaHints
	if len(hints) < 3 {
		t.Fatalf("Expected at least 3 media hints, got %d: %+v", len(hints), hints)
	}

	// Document order: enclosure first, media:content next, inline image last.
	if hints[0].URL != "https://cdn.example.com/uploads/hero.jpg" {
		t.Errorf("Expected enclosure first, got %s", hints[0].URL)
	}
	if hints[0].MIMEType != "image/jpeg" {
		t.Errorf("Expected enclosure MIME type, got %s", hints[0].MIMEType)
	}

	foundMedia := false
	foundInline := false
	for _, h := range hints {
		if h.URL == "https://cdn.example.com/uploads/wide.jpg" {
			foundMedia = true
			if h.Width != 1200 || h.Height != 675 {
				t.Errorf("Expected media:content dimensions 1200x675, got %dx%d", h.Width, h.Height)
			}
		}
		if h.URL == "https://cdn.example.com/uploads/inline.jpg" {
			foundInline = true
		}
	}
	if !foundMedia {
		t.Error("Expected media:content hint")
	}
	if !foundInline {
		t.Error("Expected inline <img> hint from body")
	}
}

func TestParserAtom(t *testing.T) {
	parser := NewParser()

	meta, entries, err := parser.Run([]byte(atomSample), "https://atom.example.com/feed")
	if err != nil {
		t.Fatal(err)
	}

	if meta.Title != "Atom Source" {
		t.Errorf("Unexpected feed title: %s", meta.Title)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Link != "https://atom.example.com/entry-1" {
		t.Errorf("Expected link from href attribute, got '%s'", e.Link)
	}
	if e.PublishedAt == nil {
		t.Error("Expected updated date to be parsed")
	}
	if !strings.Contains(e.BodyHTML, "Atom summary") {
		t.Errorf("Expected summary as body, got: %s", e.BodyHTML)
	}
}

func TestParserJSONFeed(t *testing.T) {
	parser := NewParser()

	meta, entries, err := parser.Run([]byte(jsonFeedSample), "https://json.example.com/feed.json")
	if err != nil {
		t.Fatal(err)
	}

	if meta.Title != "JSON Source" {
		t.Errorf("Unexpected feed title: %s", meta.Title)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Title != "JSON Item" {
		t.Errorf("Unexpected title: %s", e.Title)
	}
	if e.Link != "https://json.example.com/item-1" {
		t.Errorf("Unexpected link: %s", e.Link)
	}
	if e.PublishedAt == nil {
		t.Error("Expected date_published to be parsed")
	}
}

func TestParserUnknownFormat(t *testing.T) {
	parser := NewParser()

	meta, entries, err := parser.Run([]byte("<html><body>Not a feed</body></html>"), "https://example.com")
	if err != nil {
		t.Fatalf("Unknown format should be a soft failure, got error: %v", err)
	}
	if meta != nil {
		t.Error("Expected nil meta for unknown format")
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries for unknown format, got %d", len(entries))
	}
}

func TestParserEmptyPayload(t *testing.T) {
	parser := NewParser()

	meta, entries, err := parser.Run([]byte("   \n"), "https://example.com")
	if err != nil {
		t.Fatalf("Empty payload should be a soft failure, got error: %v", err)
	}
	if meta != nil || len(entries) != 0 {
		t.Error("Expected nothing from empty payload")
	}
}
