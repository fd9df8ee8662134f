package enrich

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/capeworks/feedhub/app/feed"
)

const (
	// MinParagraphs and MaxParagraphs bound how much of an article body
	// a long-form excerpt carries.
	MinParagraphs = 2
	MaxParagraphs = 4

	// Paragraphs shorter than this once stripped are boilerplate
	// (bylines, share prompts) and get skipped.
	minParagraphChars = 40
)

var sentenceEndRe = regexp.MustCompile(`([.!?])\s+`)

// Paragraphs assembles a long-form HTML excerpt from an article body:
// the first few substantial <p> blocks, joined back into paragraph
// markup. When the body has too few real paragraphs the text is split
// into sentences and regrouped into paragraph-sized chunks instead.
// Returns "" when there is nothing worth excerpting.
func Paragraphs(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	var paras []string
	rest := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			inner, err := sel.Html()
			if err != nil {
				return true
			}
			if len(feed.StripHTML(inner)) >= minParagraphChars {
				paras = append(paras, strings.TrimSpace(inner))
				// Taken paragraphs leave the document so the sentence
				// fallback never repeats their text.
				sel.Remove()
			}
			return len(paras) < MaxParagraphs
		})
		if remaining, err := doc.Html(); err == nil {
			rest = remaining
		}
	}

	if len(paras) < MinParagraphs {
		paras = appendSentenceChunks(paras, feed.StripHTML(rest))
	}

	if len(paras) == 0 {
		return ""
	}
	return "<p>" + strings.Join(paras, "</p><p>") + "</p>"
}

// appendSentenceChunks splits plain text on sentence boundaries and
// groups roughly two sentences per paragraph.
func appendSentenceChunks(paras []string, text string) []string {
	sentences := sentenceEndRe.Split(text, -1)
	ends := sentenceEndRe.FindAllStringSubmatch(text, -1)
	if len(sentences) > 6 {
		sentences = sentences[:6]
	}

	joined := 0
	for _, s := range sentences {
		joined += len(s)
	}
	if joined <= 120 {
		return paras
	}

	var chunks []string
	var buf strings.Builder
	for i, sentence := range sentences {
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(sentence)
		if i < len(ends) {
			buf.WriteString(ends[i][1])
		}
		if buf.Len() > 160 {
			chunks = append(chunks, buf.String())
			buf.Reset()
		}
	}
	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}

	for len(paras) < MaxParagraphs && len(chunks) > 0 {
		paras = append(paras, chunks[0])
		chunks = chunks[1:]
	}
	return paras
}
