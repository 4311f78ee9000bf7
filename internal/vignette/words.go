package vignette

import (
	"html"
	"strings"
)

// CountWords counts whitespace-delimited tokens in the content after
// stripping markup. Rich-text content arrives as HTML-ish strings from
// the editor collaborator; tags never count as words, and adjacent text
// separated only by tags still splits into distinct tokens.
func CountWords(content string) int {
	return len(strings.Fields(stripMarkup(content)))
}

// stripMarkup removes tags and decodes entities. A lone '<' that never
// closes drops the remainder, matching how the editor's output is always
// well-formed in practice.
func stripMarkup(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
				// Tags act as token boundaries.
				b.WriteByte(' ')
			}
		case r == '<':
			inTag = true
		default:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}
