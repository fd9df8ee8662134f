package cfg

import "time"

type Cfg struct {
	// HTTP server
	Port string

	// Upstream fetching
	UserAgent     string
	FeedTimeoutMs int
	PageTimeoutMs int

	// Aggregation limits
	NewsLimit      int
	PerFeedLimit   int
	TrafficPerFeed int
	MaxPerHost     int
	EnrichBudget   int

	// Source list
	SourcesFile string

	// Facebook Graph API
	FBPageID       string
	FBAccessToken  string
	FBGraphVersion string
	FBPostsLimit   int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

// FeedTimeout is the per-feed fetch deadline.
func (c *Cfg) FeedTimeout() time.Duration {
	return time.Duration(c.FeedTimeoutMs) * time.Millisecond
}

// PageTimeout is the deadline for per-item article page fetches.
func (c *Cfg) PageTimeout() time.Duration {
	return time.Duration(c.PageTimeoutMs) * time.Millisecond
}
