// Package render converts the HTML fragments Canvas returns (page
// bodies, announcement messages, assignment descriptions) into plain
// text suitable for a terminal document.
package render

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strip removes every tag; block breaks are inserted first so the
	// text keeps its paragraph structure.
	strip = bluemonday.StrictPolicy()

	blockBreak = regexp.MustCompile(`(?i)</(p|div|li|ul|ol|h[1-6]|tr|table|blockquote)>|<br\s*/?>`)
	listItem   = regexp.MustCompile(`(?i)<li[^>]*>`)
	multiBlank = regexp.MustCompile(`\n{3,}`)
)

// Text renders an HTML fragment as plain text: block-level closings
// become newlines, list items get a bullet, every remaining tag is
// stripped and entities are unescaped.
func Text(fragment string) string {
	if fragment == "" {
		return ""
	}

	s := listItem.ReplaceAllString(fragment, "<li>- ")
	s = blockBreak.ReplaceAllString(s, "$0\n")
	s = strip.Sanitize(s)
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(strings.TrimLeft(line, " \t"), " \t")
	}
	s = strings.Join(lines, "\n")
	s = multiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Lines renders an HTML fragment and splits it into lines. An empty
// fragment yields nil.
func Lines(fragment string) []string {
	text := Text(fragment)
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Excerpt renders an HTML fragment as a single line clipped to max runes.
func Excerpt(fragment string, max int) string {
	text := strings.Join(strings.Fields(Text(fragment)), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
