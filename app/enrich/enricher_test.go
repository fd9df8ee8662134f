package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/capeworks/feedhub/app/feed"
	"github.com/capeworks/feedhub/app/fetch"
)

const articlePage = `<html><head>
	<meta property="og:image" content="/images/hero-600x400.jpg">
</head><body>
	<article>
		<p>The first substantial paragraph of this article carries enough characters to count as real content.</p>
		<p>The second substantial paragraph also clears the minimum threshold with room to spare for sure.</p>
	</article>
</body></html>`

func newTestEnricher() *Enricher {
	return NewEnricher(fetch.NewClient("test-agent"), 2*time.Second, 10)
}

func TestEnricherFillsImageAndExcerpt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articlePage))
	}))
	defer server.Close()

	enricher := newTestEnricher()
	items := []feed.Item{
		{Title: "Needs enrichment", Link: server.URL + "/story"},
	}

	enricher.Run(context.Background(), items)

	if items[0].Image != server.URL+"/images/hero.jpg" {
		t.Errorf("Expected og:image resolved and de-scaled, got %q", items[0].Image)
	}
	if !strings.Contains(items[0].ExcerptHTML, "first substantial paragraph") {
		t.Errorf("Expected page paragraphs as excerpt, got %q", items[0].ExcerptHTML)
	}
}

func TestEnricherSkipsCompleteItems(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(articlePage))
	}))
	defer server.Close()

	longExcerpt := "<p>" + strings.Repeat("already enriched text ", 10) + "</p>"
	items := []feed.Item{
		{Title: "Complete", Link: server.URL + "/a", Image: "https://cdn.example.com/x.jpg", ExcerptHTML: longExcerpt},
	}

	newTestEnricher().Run(context.Background(), items)

	if hits.Load() != 0 {
		t.Errorf("Expected no page fetch for a complete item, got %d", hits.Load())
	}
}

func TestEnricherHonorsBudget(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(articlePage))
	}))
	defer server.Close()

	enricher := NewEnricher(fetch.NewClient("test-agent"), 2*time.Second, 2)
	items := make([]feed.Item, 5)
	for i := range items {
		items[i] = feed.Item{Title: "x", Link: server.URL + "/story"}
	}

	enricher.Run(context.Background(), items)

	if hits.Load() != 2 {
		t.Errorf("Expected exactly 2 page fetches under budget, got %d", hits.Load())
	}
}

func TestEnricherLeavesItemOnFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	items := []feed.Item{
		{Title: "Unlucky", Link: server.URL + "/story", Summary: "short"},
	}

	newTestEnricher().Run(context.Background(), items)

	if items[0].Image != "" || items[0].ExcerptHTML != "" {
		t.Errorf("Expected item untouched after failed fetch, got %+v", items[0])
	}
	if items[0].Summary != "short" {
		t.Error("Existing fields must survive a failed enrichment")
	}
}
