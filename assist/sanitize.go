package assist

import (
	"regexp"
	"strings"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	tagPattern    = regexp.MustCompile(`</?[^>]+(>|$)`)
	bulletPattern = regexp.MustCompile(`(?m)^[•*]\s?`)
	blankPattern  = regexp.MustCompile(`\n{2,}`)
)

// Sanitize normalizes raw model output into plain display text.
// Markdown bold markers are unwrapped, HTML tags and leading bullet markers
// are stripped, and runs of blank lines collapse to a single newline.
func Sanitize(text string) string {
	text = boldPattern.ReplaceAllString(text, "$1")
	text = tagPattern.ReplaceAllString(text, "")
	text = bulletPattern.ReplaceAllString(text, "")
	text = blankPattern.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
