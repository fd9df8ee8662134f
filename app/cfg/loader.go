package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Upstream fetching
	UserAgent     string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (compatible; FeedHubBot/1.0)" description:"User agent string for outbound HTTP requests"`
	FeedTimeoutMs int    `long:"feed-timeout" env:"FEED_TIMEOUT_MS" default:"3000" description:"Feed fetch timeout in milliseconds"`
	PageTimeoutMs int    `long:"page-timeout" env:"IMAGE_FETCH_TIMEOUT_MS" default:"2500" description:"Article page fetch timeout in milliseconds"`

	// Aggregation limits
	NewsLimit      int `long:"news-limit" env:"NEWS_LIMIT" default:"30" description:"Maximum items returned by the news endpoint"`
	PerFeedLimit   int `long:"news-per-feed" env:"NEWS_PER_FEED" default:"10" description:"Maximum items taken from a single news feed"`
	TrafficPerFeed int `long:"traffic-per-feed" env:"TRAFFIC_PER_FEED" default:"20" description:"Maximum items taken from a single traffic feed"`
	MaxPerHost     int `long:"max-per-host" env:"MAX_PER_HOST" default:"4" description:"Maximum items from any single host in aggregated output"`
	EnrichBudget   int `long:"enrich-budget" env:"ENRICH_BUDGET" default:"10" description:"Maximum article page fetches per request for image/excerpt enrichment"`

	// Source list
	SourcesFile string `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file with upstream source groups"`

	// Facebook Graph API
	FBPageID       string `long:"fb-page-id" env:"FB_PAGE_ID" description:"Facebook page ID (optional)"`
	FBAccessToken  string `long:"fb-access-token" env:"FB_PAGE_ACCESS_TOKEN" description:"Facebook page access token (optional)"`
	FBGraphVersion string `long:"fb-graph-version" env:"FB_GRAPH_VERSION" default:"v20.0" description:"Facebook Graph API version"`
	FBPostsLimit   int    `long:"fb-posts-limit" env:"FB_POSTS_LIMIT" default:"15" description:"Maximum posts fetched from the Graph API"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/Halifax)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:           raw.Port,
		UserAgent:      raw.UserAgent,
		FeedTimeoutMs:  raw.FeedTimeoutMs,
		PageTimeoutMs:  raw.PageTimeoutMs,
		NewsLimit:      raw.NewsLimit,
		PerFeedLimit:   raw.PerFeedLimit,
		TrafficPerFeed: raw.TrafficPerFeed,
		MaxPerHost:     raw.MaxPerHost,
		EnrichBudget:   raw.EnrichBudget,
		SourcesFile:    raw.SourcesFile,
		FBPageID:       raw.FBPageID,
		FBAccessToken:  raw.FBAccessToken,
		FBGraphVersion: raw.FBGraphVersion,
		FBPostsLimit:   raw.FBPostsLimit,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
