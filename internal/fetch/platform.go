package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform.
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform.
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform.
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform.
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com") || strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	}

	return PlatformUnknown
}

// platformSelectors carries the selector sets tuned for one job board.
// Content selectors locate the posting body, most specific first; noise
// selectors name elements to strip before extraction.
type platformSelectors struct {
	content []string
	noise   []string
}

var selectorsByPlatform = map[Platform]platformSelectors{
	PlatformGreenhouse: {
		content: []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		},
		noise: []string{
			".application--wrapper",
			".voluntary-self-id",
			".voluntary-self-id-wrapper",
			"#usa_self_id_section",
			".post-apply",
		},
	},
	PlatformLever: {
		content: []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		},
		noise: []string{
			".apply-section",
			".lever-application-form",
			".posting-apply",
		},
	},
	PlatformWorkday: {
		content: []string{
			"[data-automation-id='jobDescription']",
			".WDXK",
			".gwt-HTML",
			".job-description",
		},
		noise: []string{
			"[data-automation-id='applyButton']",
			".application-section",
			".WDAF",
		},
	},
}

// commonNoise is stripped on every platform: application machinery, legal
// boilerplate, share widgets, and consent UI.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".application--container",
	".apply-button-container",
	"[data-testid='application-form']",

	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	"[data-testid='eeo']",
	".legal-disclosure",
	".self-identification",

	".social-share",
	".share-buttons",
	".social-links",

	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

// SelectorsFor returns the content and noise selectors for a platform.
// Unknown platforms get the generic job posting selectors.
func SelectorsFor(platform Platform) (content, noise []string) {
	noise = append(noise, commonNoise...)

	ps, ok := selectorsByPlatform[platform]
	if !ok {
		return JobPostingSelectors(), noise
	}
	return ps.content, append(noise, ps.noise...)
}
