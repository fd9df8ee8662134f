package fanout

import (
	"context"
	"testing"
	"time"

	"github.com/capeworks/feedhub/app/feed"
	"github.com/capeworks/feedhub/app/sources"
)

func TestAllPreservesSourceOrder(t *testing.T) {
	srcs := []sources.Source{
		{Name: "slow", URL: "https://slow.example.com/rss"},
		{Name: "fast", URL: "https://fast.example.com/rss"},
	}

	results := All(context.Background(), srcs, func(_ context.Context, src sources.Source) SourceResult {
		if src.Name == "slow" {
			time.Sleep(20 * time.Millisecond)
		}
		return SourceResult{
			Name:  src.Name,
			URL:   src.URL,
			OK:    true,
			Items: []feed.Item{{Source: src.Name}},
		}
	})

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Name != "slow" || results[1].Name != "fast" {
		t.Errorf("Expected source order preserved, got %s, %s", results[0].Name, results[1].Name)
	}
}

func TestAllSurvivesFailedSources(t *testing.T) {
	srcs := []sources.Source{
		{Name: "broken", URL: "https://broken.example.com/rss"},
		{Name: "healthy", URL: "https://healthy.example.com/rss"},
	}

	results := All(context.Background(), srcs, func(_ context.Context, src sources.Source) SourceResult {
		if src.Name == "broken" {
			return SourceResult{Name: src.Name, Err: "HTTP 500"}
		}
		return SourceResult{Name: src.Name, OK: true, Items: []feed.Item{{Title: "ok"}}}
	})

	if !AnyOK(results) {
		t.Error("Expected at least one successful source")
	}
	items := Items(results)
	if len(items) != 1 || items[0].Title != "ok" {
		t.Errorf("Expected only the healthy source's items, got %+v", items)
	}
}

func TestAnyOKAllFailed(t *testing.T) {
	srcs := []sources.Source{
		{Name: "a", URL: "https://a.example.com/rss"},
		{Name: "b", URL: "https://b.example.com/rss"},
	}

	results := All(context.Background(), srcs, func(_ context.Context, src sources.Source) SourceResult {
		return SourceResult{Name: src.Name, Err: "timeout"}
	})

	if AnyOK(results) {
		t.Error("Expected no successful sources")
	}
	items := Items(results)
	if items == nil {
		t.Error("Expected an empty slice, not nil")
	}
	if len(items) != 0 {
		t.Errorf("Expected no items, got %d", len(items))
	}
}

func TestAllEmptySourceList(t *testing.T) {
	results := All(context.Background(), nil, func(_ context.Context, src sources.Source) SourceResult {
		t.Fatal("Fetcher should not be called")
		return SourceResult{}
	})
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}
