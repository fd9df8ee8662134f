package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// StripHTML removes script/style blocks and all markup, collapses
// whitespace, and NFC-normalizes the remaining text.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}

	doc.Find("script, style").Remove()
	text := strings.Join(strings.Fields(doc.Text()), " ")

	return norm.NFC.String(text)
}

// Excerpt produces a markup-stripped excerpt hard-capped at max runes.
func Excerpt(html string, max int) string {
	text := StripHTML(html)
	runes := []rune(text)
	if len(runes) > max {
		text = strings.TrimSpace(string(runes[:max]))
	}
	return text
}

// InlineImages returns every <img src> inside an HTML fragment as a
// media hint, in document order.
func InlineImages(html string) []MediaHint {
	if html == "" || !strings.Contains(html, "<img") {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var hints []MediaHint
	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if src == "" {
			return
		}
		hints = append(hints, MediaHint{URL: src})
	})

	return hints
}
