package api

import (
	"cmp"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/capeworks/feedhub/app/aggregate"
	"github.com/capeworks/feedhub/app/cfg"
	"github.com/capeworks/feedhub/app/enrich"
	"github.com/capeworks/feedhub/app/fanout"
	"github.com/capeworks/feedhub/app/feed"
	"github.com/capeworks/feedhub/app/fetch"
	"github.com/capeworks/feedhub/app/social"
	"github.com/capeworks/feedhub/app/sources"
)

const (
	newsCacheControl     = "public, max-age=180, s-maxage=900"
	industryCacheControl = "public, max-age=300"
	imageCacheControl    = "public, max-age=86400, s-maxage=86400"
	postsCacheControl    = "public, max-age=600, s-maxage=900"
	photosCacheControl   = "public, max-age=600"
)

func NewHandler(groups *sources.Groups, client *fetch.Client,
	enricher *enrich.Enricher, socialClient SocialClientInterface) *Handler {
	return &Handler{
		groups:            groups,
		client:            client,
		parser:            feed.NewParser(),
		normalizer:        feed.NewNormalizer(),
		trafficNormalizer: feed.NewNormalizerWithPlaceholder("Traffic advisory"),
		enricher:          enricher,
		socialClient:      socialClient,
	}
}

// GetNews serves the regional news digest: all news sources fetched
// concurrently, filtered, deduplicated, newest first, capped per host
// and overall.
func (h *Handler) GetNews(c *gin.Context) {
	conf := cfg.Get()
	c.Header("Cache-Control", newsCacheControl)

	results := fanout.All(c.Request.Context(), h.groups.News, func(ctx context.Context, src sources.Source) fanout.SourceResult {
		return h.fetchSource(ctx, src, conf.PerFeedLimit, h.normalizer)
	})

	items := aggregate.Apply(fanout.Items(results),
		aggregate.ExcludeCorporateHR,
		aggregate.ExcludeSexualContent,
		aggregate.ExcludeTrafficOutsideCapeBreton,
	)

	// Every source down is an upstream failure; sources reachable but
	// everything filtered away is just an empty result.
	if len(items) == 0 && !fanout.AnyOK(results) {
		h.respondNoItems(c, results, "No items from feeds.")
		return
	}

	aggregate.SortByDate(items)
	items = aggregate.Dedup(items)
	items = aggregate.CapPerHost(items, conf.MaxPerHost)
	items = aggregate.Limit(items, conf.NewsLimit)

	body := gin.H{"items": items}
	if debugEnabled(c) {
		body["debug"] = gin.H{"feeds": diagnostics(results)}
	}
	c.JSON(http.StatusOK, body)
}

// GetTraffic serves traffic and weather advisories as-is: no topic
// filtering, no per-host cap, just newest first.
func (h *Handler) GetTraffic(c *gin.Context) {
	conf := cfg.Get()
	c.Header("Cache-Control", newsCacheControl)

	results := fanout.All(c.Request.Context(), h.groups.Traffic, func(ctx context.Context, src sources.Source) fanout.SourceResult {
		return h.fetchSource(ctx, src, conf.TrafficPerFeed, h.trafficNormalizer)
	})

	items := fanout.Items(results)
	if len(items) == 0 && !fanout.AnyOK(results) {
		h.respondNoItems(c, results, "No items from traffic feeds.")
		return
	}

	aggregate.SortByDate(items)

	body := gin.H{"items": items}
	if debugEnabled(c) {
		body["debug"] = gin.H{"feeds": diagnostics(results)}
	}
	c.JSON(http.StatusOK, body)
}

// GetIndustry serves weighted long-form industry items: page-enriched
// excerpts, relevance-ranked, deduplicated, capped by the limit query
// parameter (1 to 20, default 10).
func (h *Handler) GetIndustry(c *gin.Context) {
	c.Header("Cache-Control", industryCacheControl)
	limit := clampInt(c.Query("limit"), 10, 1, 20)

	results := fanout.All(c.Request.Context(), h.groups.Industry, func(ctx context.Context, src sources.Source) fanout.SourceResult {
		return h.fetchIndustrySource(ctx, src)
	})

	items := fanout.Items(results)
	if len(items) == 0 {
		c.JSON(http.StatusOK, gin.H{"data": []feed.Item{}})
		return
	}

	items = h.enricher.Run(c.Request.Context(), items)
	aggregate.Rank(items, sources.Weights(h.groups.Industry), aggregate.AtlanticTerms, time.Now())
	items = aggregate.Dedup(items)
	items = aggregate.Limit(items, limit)

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetNewsImage resolves a representative image for an arbitrary
// article URL. Failures return an empty image with HTTP 200 so the
// client can fall back to its placeholder without error handling.
func (h *Handler) GetNewsImage(c *gin.Context) {
	conf := cfg.Get()
	c.Header("Cache-Control", imageCacheControl)

	pageURL := c.Query("u")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing u"})
		return
	}

	result := h.client.Run(c.Request.Context(), pageURL, conf.PageTimeout(), fetch.AcceptHTML)
	diag := sourceDiag{
		URL:        pageURL,
		OK:         result.OK,
		Status:     result.StatusCode,
		DurationMs: result.Elapsed.Milliseconds(),
		Error:      result.Err,
	}

	image := ""
	if result.OK {
		image = enrich.PageImage(string(result.Body), pageURL)
	}

	body := gin.H{"image": image}
	if debugEnabled(c) {
		body["debug"] = diag
	}
	c.JSON(http.StatusOK, body)
}

// GetSocialPosts serves the page's latest Facebook posts.
func (h *Handler) GetSocialPosts(c *gin.Context) {
	conf := cfg.Get()
	c.Header("Cache-Control", postsCacheControl)

	posts, err := h.socialClient.Posts(c.Request.Context(), conf.FBPostsLimit)
	if err != nil {
		if errors.Is(err, social.ErrMissingCredentials) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing FB_PAGE_ID or FB_PAGE_ACCESS_TOKEN"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Facebook API error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": posts})
}

// GetSocialPhotos serves the page's photos, capped by the limit query
// parameter (1 to 50, default 30).
func (h *Handler) GetSocialPhotos(c *gin.Context) {
	c.Header("Cache-Control", photosCacheControl)
	limit := clampInt(c.Query("limit"), 30, 1, 50)

	photos, err := h.socialClient.Photos(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, social.ErrMissingCredentials) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing FB_PAGE_ID or FB_ACCESS_TOKEN"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Facebook API error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": photos})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.GetVersion(),
		"sources": gin.H{
			"news":     len(h.groups.News),
			"traffic":  len(h.groups.Traffic),
			"industry": len(h.groups.Industry),
		},
	})
}

// fetchSource runs the fetch, parse, and normalize pipeline for one
// feed. All failure modes land in the result; nothing here can fail
// the aggregation.
func (h *Handler) fetchSource(ctx context.Context, src sources.Source, perFeed int, normalizer *feed.Normalizer) fanout.SourceResult {
	conf := cfg.Get()

	result := h.client.Run(ctx, src.URL, conf.FeedTimeout(), fetch.AcceptFeed)
	out := fanout.SourceResult{
		Name:    src.Name,
		URL:     src.URL,
		Status:  result.StatusCode,
		Elapsed: result.Elapsed,
		Err:     result.Err,
	}
	if !result.OK {
		return out
	}

	meta, entries, err := h.parser.Run(result.Body, src.URL)
	if err != nil {
		out.Err = err.Error()
		return out
	}

	out.OK = true
	if meta == nil {
		return out
	}

	label := cmp.Or(feed.StripHTML(meta.Title), src.Name)
	if len(entries) > perFeed {
		entries = entries[:perFeed]
	}

	for _, entry := range entries {
		if item, ok := normalizer.Run(entry, label); ok {
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// fetchIndustrySource additionally assembles a long-form excerpt from
// the entry body and labels items with the configured source name so
// ranking can look up the source weight.
func (h *Handler) fetchIndustrySource(ctx context.Context, src sources.Source) fanout.SourceResult {
	conf := cfg.Get()

	result := h.client.Run(ctx, src.URL, conf.FeedTimeout(), fetch.AcceptFeed)
	out := fanout.SourceResult{
		Name:    src.Name,
		URL:     src.URL,
		Status:  result.StatusCode,
		Elapsed: result.Elapsed,
		Err:     result.Err,
	}
	if !result.OK {
		return out
	}

	meta, entries, err := h.parser.Run(result.Body, src.URL)
	if err != nil {
		out.Err = err.Error()
		return out
	}

	out.OK = true
	if meta == nil {
		return out
	}

	for _, entry := range entries {
		item, ok := h.normalizer.Run(entry, src.Name)
		if !ok {
			continue
		}
		item.ExcerptHTML = enrich.Paragraphs(entry.BodyHTML)
		out.Items = append(out.Items, item)
	}
	return out
}

func (h *Handler) respondNoItems(c *gin.Context, results []fanout.SourceResult, message string) {
	body := gin.H{"items": []feed.Item{}, "error": message}
	if debugEnabled(c) {
		body["debug"] = gin.H{"feeds": diagnostics(results)}
	}
	c.JSON(http.StatusBadGateway, body)
}

func diagnostics(results []fanout.SourceResult) []sourceDiag {
	diags := make([]sourceDiag, 0, len(results))
	for _, r := range results {
		diags = append(diags, sourceDiag{
			URL:        r.URL,
			OK:         r.OK,
			Status:     r.Status,
			DurationMs: r.Elapsed.Milliseconds(),
			ItemCount:  len(r.Items),
			Error:      r.Err,
		})
	}
	return diags
}

func debugEnabled(c *gin.Context) bool {
	return c.Query("debug") == "1"
}

func clampInt(raw string, def, min, max int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
