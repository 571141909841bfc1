// Package textproc normalizes listing and CV text for matching.
package textproc

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	brTag    = regexp.MustCompile(`(?i)<br\s*/?>`)
	anyTag   = regexp.MustCompile(`<[^>]+>`)
	spaceRun = regexp.MustCompile(`[ \t]+`)
	blankRun = regexp.MustCompile(`\n{3,}`)
	// Keeps tech tokens like c++, c#, node.js intact.
	nonMatchable = regexp.MustCompile(`[^a-z0-9\s\-\+\#\.]`)
)

// CleanHTML strips markup from raw HTML and returns readable plain text.
// Line breaks are preserved for <br>, entities are decoded by the parser.
func CleanHTML(raw string) string {
	raw = brTag.ReplaceAllString(raw, "\n")
	// Adjacent tags would otherwise glue words from sibling elements together.
	raw = strings.ReplaceAll(raw, "><", "> <")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return CollapseWhitespace(anyTag.ReplaceAllString(raw, " "))
	}
	doc.Find("script, style").Remove()

	return CollapseWhitespace(doc.Text())
}

// CollapseWhitespace squeezes runs of spaces/tabs and excess blank lines.
func CollapseWhitespace(text string) string {
	text = spaceRun.ReplaceAllString(text, " ")
	text = blankRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// NormalizeForMatching lowercases and strips everything the matcher does not
// care about. Both CV text and listing text go through this before scoring.
func NormalizeForMatching(text string) string {
	text = CleanHTML(text)
	text = strings.ToLower(text)
	text = nonMatchable.ReplaceAllString(text, " ")
	return CollapseWhitespace(text)
}
