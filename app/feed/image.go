package feed

import (
	"regexp"
	"strings"
)

var (
	imageExtensionRe = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|gif)(\?|$)`)
	mediaPathRe      = regexp.MustCompile(`(?i)wp-content|uploads|cdn|images|image|media`)
	scaledVariantRe  = regexp.MustCompile(`^(.*)-\d+x\d+(\.[a-zA-Z0-9]+)(\?.*)?$`)
)

// SelectImage picks the best image candidate. Highest score wins, ties
// go to the larger declared pixel area, remaining ties keep document
// order (enclosures come before inline images, which is itself a
// relevance signal).
func SelectImage(hints []MediaHint) string {
	bestURL := ""
	bestScore := -1
	bestArea := -1

	for _, h := range hints {
		if h.URL == "" {
			continue
		}
		score := scoreHint(h)
		area := h.Width * h.Height
		if score > bestScore || (score == bestScore && area > bestArea) {
			bestURL = h.URL
			bestScore = score
			bestArea = area
		}
	}

	return bestURL
}

func scoreHint(h MediaHint) int {
	score := 0
	if strings.HasPrefix(strings.ToLower(h.MIMEType), "image/") {
		score += 50
	}
	if imageExtensionRe.MatchString(h.URL) {
		score += 40
	}
	if mediaPathRe.MatchString(h.URL) {
		score += 15
	}
	area := h.Width * h.Height
	if area >= 800*450 {
		score += 15
	} else if area >= 400*225 {
		score += 8
	}
	return score
}

// PreferOriginal rewrites CMS-scaled asset URLs of the form
// name-640x360.jpg back to name.jpg so the unscaled variant is used.
func PreferOriginal(u string) string {
	if u == "" {
		return u
	}
	if m := scaledVariantRe.FindStringSubmatch(u); m != nil {
		return m[1] + m[2] + m[3]
	}
	return u
}
