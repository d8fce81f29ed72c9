package docsem

import (
	"strings"
	"unicode"
)

// Section represents one h2-delimited slice of a documentation page.
type Section struct {
	// Title is the trimmed heading text.
	Title string `json:"title"`

	// Anchor is the heading's id attribute, or a slugified form of the
	// title when the heading carries no id.
	Anchor string `json:"anchor"`

	// Text is the whitespace-normalized text of every sibling node between
	// this heading and the next h2 (or end of container). May be empty.
	Text string `json:"text"`
}

// Slugify creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func Slugify(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	// Trim trailing hyphen
	return strings.TrimSuffix(sb.String(), "-")
}
