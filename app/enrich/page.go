package enrich

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/capeworks/feedhub/app/feed"
)

// PageImage extracts the best representative image URL from an article
// page. Candidates are tried in priority order: Open Graph tags,
// Twitter card, Parsely, a rel=image_src link, JSON-LD structured data,
// the widest srcset entry, and finally the first plain <img>. The
// result is absolutized against the page URL.
func PageImage(html, pageURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	candidates := []func(*goquery.Document) string{
		metaContent(`meta[property="og:image"]`),
		metaContent(`meta[property="og:image:secure_url"]`),
		metaContent(`meta[name="twitter:image"]`),
		metaContent(`meta[name="parsely-image"]`),
		linkHref(`link[rel="image_src"]`),
		jsonLDImage,
		bestSrcset,
		firstImgSrc,
	}

	for _, candidate := range candidates {
		if u := candidate(doc); u != "" {
			return feed.AbsoluteURL(u, pageURL)
		}
	}
	return ""
}

func metaContent(selector string) func(*goquery.Document) string {
	return func(doc *goquery.Document) string {
		content, _ := doc.Find(selector).First().Attr("content")
		return strings.TrimSpace(content)
	}
}

func linkHref(selector string) func(*goquery.Document) string {
	return func(doc *goquery.Document) string {
		href, _ := doc.Find(selector).First().Attr("href")
		return strings.TrimSpace(href)
	}
}

func jsonLDImage(doc *goquery.Document) string {
	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return true
		}
		if u := walkJSONLD(payload); u != "" {
			found = u
			return false
		}
		return true
	})
	return found
}

// walkJSONLD looks for an image URL anywhere in a JSON-LD document.
// Only `image` and `thumbnailUrl` keys are treated as image bearers;
// other keys are descended into but their scalar values are ignored.
func walkJSONLD(node any) string {
	switch v := node.(type) {
	case []any:
		for _, child := range v {
			if u := walkJSONLD(child); u != "" {
				return u
			}
		}
	case map[string]any:
		if image, ok := v["image"]; ok {
			if u := imageValue(image); u != "" {
				return u
			}
		}
		if thumb, ok := v["thumbnailUrl"].(string); ok && thumb != "" {
			return thumb
		}
		for key, child := range v {
			if key == "image" || key == "thumbnailUrl" {
				continue
			}
			if u := walkJSONLD(child); u != "" {
				return u
			}
		}
	}
	return ""
}

// imageValue unwraps the schema.org image shapes: a bare URL string, a
// list of them, or an ImageObject with a url field.
func imageValue(node any) string {
	switch v := node.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			return imageValue(v[0])
		}
	case map[string]any:
		if u, ok := v["url"].(string); ok {
			return u
		}
	}
	return ""
}

// bestSrcset picks the widest entry from the first <img srcset>.
func bestSrcset(doc *goquery.Document) string {
	srcset, ok := doc.Find("img[srcset]").First().Attr("srcset")
	if !ok {
		return ""
	}

	var bestURL string
	bestWidth := -1
	for _, part := range strings.Split(srcset, ",") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) == 0 {
			continue
		}
		width := 0
		if len(fields) > 1 && strings.HasSuffix(fields[1], "w") {
			width, _ = strconv.Atoi(strings.TrimSuffix(fields[1], "w"))
		}
		if width >= bestWidth {
			bestWidth = width
			bestURL = fields[0]
		}
	}
	return bestURL
}

func firstImgSrc(doc *goquery.Document) string {
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}
