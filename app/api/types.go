package api

import (
	"context"

	"github.com/capeworks/feedhub/app/enrich"
	"github.com/capeworks/feedhub/app/feed"
	"github.com/capeworks/feedhub/app/fetch"
	"github.com/capeworks/feedhub/app/social"
	"github.com/capeworks/feedhub/app/sources"
)

type SocialClientInterface interface {
	Posts(ctx context.Context, limit int) ([]social.Post, error)
	Photos(ctx context.Context, limit int) ([]social.Photo, error)
}

var _ SocialClientInterface = (*social.Client)(nil)

type Handler struct {
	groups            *sources.Groups
	client            *fetch.Client
	parser            *feed.Parser
	normalizer        *feed.Normalizer
	trafficNormalizer *feed.Normalizer
	enricher          *enrich.Enricher
	socialClient      SocialClientInterface
}

// sourceDiag is the per-source diagnostic block returned when ?debug=1
// is set.
type sourceDiag struct {
	URL        string `json:"url"`
	OK         bool   `json:"ok"`
	Status     int    `json:"status"`
	DurationMs int64  `json:"durationMs"`
	ItemCount  int    `json:"itemCount"`
	Error      string `json:"error,omitempty"`
}
