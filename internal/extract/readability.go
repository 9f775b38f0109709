package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/amishk599/roomwatch/internal/model"
)

// Ensure ReadabilityExtractor implements model.Extractor.
var _ model.Extractor = (*ReadabilityExtractor)(nil)

// ReadabilityExtractor keeps only the main content block of the page, as
// scored by go-readability. Useful on listing pages with heavy sidebars.
type ReadabilityExtractor struct {
	pageURL *url.URL
}

// NewReadabilityExtractor returns an extractor that resolves relative links
// against pageURL.
func NewReadabilityExtractor(pageURL string) (*ReadabilityExtractor, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid page URL: %s", pageURL)
	}
	return &ReadabilityExtractor{pageURL: u}, nil
}

// Extract implements model.Extractor.
func (e *ReadabilityExtractor) Extract(markup string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(markup), e.pageURL)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}
	return NormalizeLines(article.TextContent), nil
}
