package fanout

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/capeworks/feedhub/app/feed"
	"github.com/capeworks/feedhub/app/sources"
)

// SourceResult carries one source's outcome through aggregation. A
// failed source yields OK=false and an empty item list; it never fails
// the whole fan-out.
type SourceResult struct {
	Name    string
	URL     string
	OK      bool
	Status  int
	Elapsed time.Duration
	Err     string
	Items   []feed.Item
}

// Fetcher produces one source's items. Implementations report failure
// through the result, not the error path.
type Fetcher func(ctx context.Context, src sources.Source) SourceResult

// All runs fn for every source concurrently and waits for all of them.
// Results come back in source order regardless of completion order.
func All(ctx context.Context, srcs []sources.Source, fn Fetcher) []SourceResult {
	results := make([]SourceResult, len(srcs))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range srcs {
		g.Go(func() error {
			results[i] = fn(ctx, src)
			return nil
		})
	}
	g.Wait()

	return results
}

// Items flattens the successful results' items in source order. The
// result is never nil so callers can serialize it as an empty array.
func Items(results []SourceResult) []feed.Item {
	items := []feed.Item{}
	for _, r := range results {
		if r.OK {
			items = append(items, r.Items...)
		}
	}
	return items
}

// AnyOK reports whether at least one source succeeded.
func AnyOK(results []SourceResult) bool {
	for _, r := range results {
		if r.OK {
			return true
		}
	}
	return false
}
