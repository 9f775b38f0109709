package fetcher

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"

	"github.com/amishk599/roomwatch/internal/model"
)

// Ensure BrowserFetcher implements model.PageFetcher.
var _ model.PageFetcher = (*BrowserFetcher)(nil)

// BrowserFetcher renders the page in headless Chrome before reading the DOM.
// Use it for listing sites that build their room tables client-side.
type BrowserFetcher struct {
	url       string
	chromeBin string // empty means chromedp's default lookup
}

// NewBrowserFetcher returns a fetcher that drives a headless browser.
func NewBrowserFetcher(url, chromeBin string) *BrowserFetcher {
	return &BrowserFetcher{url: url, chromeBin: chromeBin}
}

// Fetch navigates to the page, waits for <body> and returns the rendered
// outer HTML. Bounded by the same timeout as HTTPFetcher.
func (f *BrowserFetcher) Fetch(ctx context.Context) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(UserAgent),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.NoSandbox,
	)
	if f.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(f.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeoutCtx, cancel := context.WithTimeout(browserCtx, Timeout)
	defer cancel()

	var markup string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(f.url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &markup, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("%w: render %s: %w", model.ErrFetch, f.url, err)
	}
	return markup, nil
}
