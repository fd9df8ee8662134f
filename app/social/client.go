package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/capeworks/feedhub/app/aggregate"
)

// ErrMissingCredentials means the page id or access token is not
// configured. Callers should fail the request fast instead of hitting
// the Graph API with empty parameters.
var ErrMissingCredentials = errors.New("missing facebook page id or access token")

const defaultBaseURL = "https://graph.facebook.com"

// postsFallbackLimit is how many recent posts the photo fallback scans
// for attachment images.
const postsFallbackLimit = 25

// Client talks to the Facebook Graph API for one page.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageID     string
	token      string
	version    string
}

func NewClient(pageID, token, version string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		pageID:     pageID,
		token:      token,
		version:    version,
	}
}

// Posts returns the page's latest posts, newest first as the API
// delivers them. Posts with neither text nor an image are dropped.
func (c *Client) Posts(ctx context.Context, limit int) ([]Post, error) {
	if c.pageID == "" || c.token == "" {
		return nil, ErrMissingCredentials
	}

	fields := strings.Join([]string{
		"id",
		"message",
		"story",
		"created_time",
		"permalink_url",
		"full_picture",
		"attachments{media_type,description,media,target,url,subattachments}",
	}, ",")

	var envelope postsEnvelope
	if err := c.get(ctx, c.endpoint("posts", fields, limit), &envelope); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		if post, ok := mapPost(raw); ok {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// Photos returns the page's photos: uploaded photos first, topped up
// from recent posts' attachments when the uploads alone do not fill
// the limit. Duplicates are dropped by photo id, or by canonicalized
// image URL when the id is absent (fbcdn serves the same image under
// varying query strings).
func (c *Client) Photos(ctx context.Context, limit int) ([]Photo, error) {
	if c.pageID == "" || c.token == "" {
		return nil, ErrMissingCredentials
	}

	var photos []Photo
	seen := make(map[string]bool)

	photoFields := "id,permalink_url,created_time,name,images,full_picture,link"
	uploadedURL := c.endpoint("photos", photoFields, limit) + "&type=uploaded"

	var uploaded photosEnvelope
	uploadedErr := c.get(ctx, uploadedURL, &uploaded)
	if uploadedErr != nil {
		slog.Warn("uploaded photos fetch failed, falling back to posts", "error", uploadedErr)
	}
	for _, raw := range uploaded.Data {
		photos = appendPhoto(photos, seen, photoFromUpload(raw))
	}

	if len(photos) < limit {
		postFields := "permalink_url,created_time,message,full_picture,attachments{media_type,media,subattachments}"

		var posts postsEnvelope
		postsErr := c.get(ctx, c.endpoint("posts", postFields, postsFallbackLimit), &posts)
		if postsErr != nil {
			if uploadedErr != nil {
				return nil, fmt.Errorf("photos unavailable: %w", postsErr)
			}
			slog.Warn("posts photo fallback failed", "error", postsErr)
		}
		for _, post := range posts.Data {
			photos = appendPostPhotos(photos, seen, post)
		}
	}

	slices.SortStableFunc(photos, func(a, b Photo) int {
		return strings.Compare(b.CreatedTime, a.CreatedTime)
	})
	if len(photos) > limit {
		photos = photos[:limit]
	}
	return photos, nil
}

func (c *Client) endpoint(edge, fields string, limit int) string {
	query := url.Values{}
	query.Set("fields", fields)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("access_token", c.token)
	return fmt.Sprintf("%s/%s/%s/%s?%s", c.baseURL, c.version, c.pageID, edge, query.Encode())
}

func (c *Client) get(ctx context.Context, rawURL string, out interface{ errorDetail() *graphError }) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read graph api response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode graph api response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if detail := out.errorDetail(); detail != nil && detail.Message != "" {
			return fmt.Errorf("graph api error: %s", detail.Message)
		}
		return fmt.Errorf("graph api error: HTTP %d", resp.StatusCode)
	}
	return nil
}

func (e *postsEnvelope) errorDetail() *graphError  { return e.Error }
func (e *photosEnvelope) errorDetail() *graphError { return e.Error }

func mapPost(raw graphPost) (Post, bool) {
	message := strings.TrimSpace(raw.Message)
	if message == "" {
		message = strings.TrimSpace(raw.Story)
	}
	image := postImage(raw)
	if message == "" && image == "" {
		return Post{}, false
	}

	created := time.Now()
	if raw.CreatedTime != "" {
		if parsed, err := dateparse.ParseAny(raw.CreatedTime); err == nil {
			created = parsed
		}
	}

	link := raw.PermalinkURL
	if link == "" {
		link = "#"
	}

	return Post{
		ID:           raw.ID,
		Message:      message,
		CreatedISO:   created.UTC().Format(time.RFC3339),
		CreatedHuman: created.Format("Jan 2, 2006"),
		Image:        image,
		Link:         link,
	}, true
}

// postImage walks the post's media in preference order: the hero
// picture, the first attachment's image, then any subattachment image
// (albums and carousels).
func postImage(raw graphPost) string {
	if raw.FullPicture != "" {
		return raw.FullPicture
	}
	if len(raw.Attachments.Data) == 0 {
		return ""
	}
	first := raw.Attachments.Data[0]
	if first.Media.Image.Src != "" {
		return first.Media.Image.Src
	}
	for _, sub := range first.Subattachments.Data {
		if sub.Media.Image.Src != "" {
			return sub.Media.Image.Src
		}
	}
	return ""
}

func photoFromUpload(raw graphPhoto) Photo {
	src := raw.FullPicture
	if src == "" {
		src = raw.Source
	}
	if src == "" && len(raw.Images) > 0 {
		src = raw.Images[0].Source
	}

	permalink := raw.PermalinkURL
	if permalink == "" {
		permalink = raw.Link
	}

	return Photo{
		ID:           raw.ID,
		PermalinkURL: permalink,
		CreatedTime:  raw.CreatedTime,
		FullPicture:  src,
	}
}

func appendPhoto(photos []Photo, seen map[string]bool, photo Photo) []Photo {
	if photo.FullPicture == "" {
		return photos
	}
	key := "id:" + photo.ID
	if photo.ID == "" {
		key = "url:" + aggregate.CanonicalURL(photo.FullPicture)
	}
	if seen[key] {
		return photos
	}
	seen[key] = true
	if photo.ID == "" {
		photo.ID = key
	}
	return append(photos, photo)
}

func appendPostPhotos(photos []Photo, seen map[string]bool, post graphPost) []Photo {
	if post.FullPicture != "" {
		photos = appendPhoto(photos, seen, Photo{
			ID:           post.ID,
			PermalinkURL: post.PermalinkURL,
			CreatedTime:  post.CreatedTime,
			FullPicture:  post.FullPicture,
		})
	}
	for i, attachment := range post.Attachments.Data {
		if src := attachment.Media.Image.Src; src != "" {
			photos = appendPhoto(photos, seen, Photo{
				ID:           fmt.Sprintf("%s-a%d", post.ID, i),
				PermalinkURL: post.PermalinkURL,
				CreatedTime:  post.CreatedTime,
				FullPicture:  src,
			})
		}
		for _, sub := range attachment.Subattachments.Data {
			src := sub.Media.Image.Src
			if src == "" {
				continue
			}
			// A missing target id leaves ID empty so dedup falls back
			// to the canonicalized image URL.
			id := ""
			if sub.Target.ID != "" {
				id = post.ID + "-" + sub.Target.ID
			}
			photos = appendPhoto(photos, seen, Photo{
				ID:           id,
				PermalinkURL: post.PermalinkURL,
				CreatedTime:  post.CreatedTime,
				FullPicture:  src,
			})
		}
	}
	return photos
}
