package fetch

import (
	"context"
	"log"
	"strings"
	"time"
)

// JobOptions configures a job posting fetch.
type JobOptions struct {
	// Timeout bounds both the HTTP fetch and browser rendering.
	// Zero means DefaultTimeout.
	Timeout time.Duration
	// UseBrowser enables the headless browser fallback for SPA postings.
	UseBrowser bool
	// Verbose logs each step of the fetch.
	Verbose bool
}

// JobResult is a job posting reduced to plain text.
type JobResult struct {
	URL      string
	Platform Platform
	Text     string
}

// JobPosting fetches a job posting URL and extracts its main text using
// selectors tuned for the detected platform. When the plain fetch yields
// too little text and opts.UseBrowser is set, the page is re-rendered in a
// headless browser; browser failures fall back to the HTTP content.
func JobPosting(ctx context.Context, urlStr string, opts *JobOptions) (*JobResult, error) {
	if opts == nil {
		opts = &JobOptions{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	platform := DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[FETCH] %s (platform: %s)", urlStr, platform)
	}

	result, err := URL(ctx, urlStr, &Options{Timeout: timeout, UserAgent: DefaultUserAgent})
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		log.Printf("[FETCH] Fetched HTML: %d bytes", len(result.HTML))
	}

	content, noise := SelectorsFor(platform)
	text, err := ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	if opts.Verbose {
		log.Printf("[FETCH] Extracted text: %d chars", len(text))
	}

	if opts.UseBrowser && ShouldUseBrowser(text) {
		if opts.Verbose {
			log.Printf("[FETCH] Content too short (%d chars < %d), rendering with browser",
				len(text), MinContentLength)
		}
		browserHTML, browserErr := WithBrowser(ctx, urlStr, timeout, opts.Verbose)
		if browserErr != nil {
			if opts.Verbose {
				log.Printf("[FETCH] Browser rendering failed: %v, keeping HTTP content", browserErr)
			}
		} else if rendered, extractErr := ExtractMainText(browserHTML, content, noise...); extractErr == nil {
			text = rendered
			if opts.Verbose {
				log.Printf("[FETCH] Browser extracted text: %d chars", len(text))
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, &Error{URL: urlStr, Message: "no text content extracted"}
	}

	return &JobResult{URL: urlStr, Platform: platform, Text: text}, nil
}
