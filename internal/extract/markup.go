// Package extract reduces raw page markup to normalized plain text.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/amishk599/roomwatch/internal/model"
)

// stripSelector lists elements removed together with all of their text.
const stripSelector = "script, style, nav, footer, header"

// Ensure MarkupExtractor implements model.Extractor.
var _ model.Extractor = MarkupExtractor{}

// MarkupExtractor drops page chrome and keeps every remaining text node in
// document order.
type MarkupExtractor struct{}

// Extract implements model.Extractor.
func (MarkupExtractor) Extract(markup string) (string, error) {
	return Text(markup)
}

// Text removes script, style, nav, footer and header elements, collects the
// remaining text nodes in document order and returns them one trimmed,
// non-empty line per line.
func Text(markup string) (string, error) {
	// Scripting disabled so <noscript> content parses as markup, not raw text.
	root, err := html.ParseWithOptions(strings.NewReader(markup), html.ParseOptionEnableScripting(false))
	if err != nil {
		return "", fmt.Errorf("parse markup: %w", err)
	}

	doc := goquery.NewDocumentFromNode(root)
	doc.Find(stripSelector).Remove()

	var chunks []string
	for _, n := range doc.Nodes {
		collectText(n, &chunks)
	}
	return NormalizeLines(strings.Join(chunks, "\n")), nil
}

func collectText(n *html.Node, out *[]string) {
	if n.Type == html.TextNode {
		*out = append(*out, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}

// NormalizeLines splits s on line boundaries, trims every line, drops the
// empty ones and rejoins the rest with "\n".
func NormalizeLines(s string) string {
	lines := strings.FieldsFunc(s, isLineBreak)
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
