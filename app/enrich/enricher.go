package enrich

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"

	"github.com/capeworks/feedhub/app/feed"
	"github.com/capeworks/feedhub/app/fetch"
)

// Items with a stripped excerpt shorter than this get a page fetch to
// find more body text.
const minExcerptChars = 140

// Enricher fills in missing images and thin excerpts by fetching the
// article page itself. Page fetches are the expensive part of a
// request, so at most budget items are fetched per run.
type Enricher struct {
	client  *fetch.Client
	timeout time.Duration
	budget  int
}

func NewEnricher(client *fetch.Client, timeout time.Duration, budget int) *Enricher {
	return &Enricher{
		client:  client,
		timeout: timeout,
		budget:  budget,
	}
}

// Run enriches items in place and returns the same slice. Items that
// already carry an image and a substantial excerpt are untouched. Page
// fetch failures leave the item as it was; enrichment is best-effort
// and never drops anything.
func (e *Enricher) Run(ctx context.Context, items []feed.Item) []feed.Item {
	var picked []int
	for i := range items {
		if !needsPage(items[i]) {
			continue
		}
		picked = append(picked, i)
		if len(picked) >= e.budget {
			break
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, i := range picked {
		g.Go(func() error {
			e.enrichOne(ctx, &items[i])
			return nil
		})
	}
	g.Wait()

	return items
}

func needsPage(item feed.Item) bool {
	if item.Image == "" {
		return true
	}
	return len(feed.StripHTML(item.ExcerptHTML)) < minExcerptChars
}

func (e *Enricher) enrichOne(ctx context.Context, item *feed.Item) {
	result := e.client.Run(ctx, item.Link, e.timeout, fetch.AcceptHTML)
	if !result.OK {
		slog.Debug("page enrichment fetch failed", "url", item.Link, "error", result.Err)
		return
	}

	html := string(result.Body)

	if len(feed.StripHTML(item.ExcerptHTML)) < minExcerptChars {
		if excerpt := e.pageExcerpt(result.Body, item.Link); excerpt != "" {
			item.ExcerptHTML = excerpt
		}
	}
	if item.Image == "" {
		item.Image = feed.PreferOriginal(PageImage(html, item.Link))
	}
}

// pageExcerpt extracts paragraphs straight from the page, falling back
// to readability's article extraction when raw markup yields nothing
// usable (navigation-heavy pages, paywalled shells).
func (e *Enricher) pageExcerpt(body []byte, pageURL string) string {
	if excerpt := Paragraphs(string(body)); excerpt != "" {
		return excerpt
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		parsed = nil
	}
	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return ""
	}
	return Paragraphs(article.Content)
}
