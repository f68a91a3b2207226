package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length to consider a plain
// HTTP fetch successful. Shorter content usually means the posting is a
// JavaScript-rendered SPA and needs browser rendering.
const MinContentLength = 500

// renderSettle is how long to wait after load for client-side rendering to
// fill the page. bannerSettle covers re-layout after a cookie banner is
// dismissed.
const (
	renderSettle = 3 * time.Second
	bannerSettle = 1 * time.Second
)

// acceptButtons matches the confirm button of common cookie banners.
const acceptButtons = `button[id*="accept"], button[class*="accept"], button:contains("OK"), button:contains("Accept")`

// ShouldUseBrowser reports whether the extracted text is too short to be a
// real posting, indicating the page renders client side.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders a page in a headless browser and returns the rendered
// HTML. Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	if err := chromedp.Run(browserCtx, renderPage(url, &html)...); err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}
	return html, nil
}

// renderPage navigates to the posting, lets scripts settle, dismisses any
// cookie banner, and captures the final document.
func renderPage(url string, html *string) []chromedp.Action {
	return []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Banner may be absent; a failed click is fine.
			_ = chromedp.Click(acceptButtons, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.Sleep(bannerSettle),
		chromedp.OuterHTML("html", html),
	}
}
