package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Senior Backend Engineer</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "Senior Backend Engineer")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
	assert.Equal(t, DefaultUserAgent, gotUserAgent)
}

func TestURL_CustomHeaders(t *testing.T) {
	var gotSource string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSource = r.Header.Get("X-Request-Source")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	_, err := URL(context.Background(), server.URL, &Options{
		Headers: map[string]string{"X-Request-Source": "analyzer"},
	})
	require.NoError(t, err)
	assert.Equal(t, "analyzer", gotSource)
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestURL_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result, "body should come back even on error status")
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestExtractMainText(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		contains    []string
		notContains []string
	}{
		{
			name: "picks main element and drops page chrome",
			html: `<html><body>
				<nav>Jobs | About | Login</nav>
				<main><h1>Platform Engineer</h1><p>Own the ingestion pipeline.</p></main>
				<footer>All rights reserved</footer>
			</body></html>`,
			contains:    []string{"Platform Engineer", "ingestion pipeline"},
			notContains: []string{"Login", "rights reserved"},
		},
		{
			name: "prefers job description over surrounding body",
			html: `<html><body>
				<div class="sidebar">Open roles: 14</div>
				<div class="job-description"><h2>What you'll do</h2><p>Ship Go services on Kubernetes.</p></div>
			</body></html>`,
			contains:    []string{"What you'll do", "Kubernetes"},
			notContains: []string{"Open roles"},
		},
		{
			name:     "falls back to body when nothing matches",
			html:     `<html><body><div>We are hiring a data engineer.</div></body></html>`,
			contains: []string{"hiring a data engineer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractMainText(tt.html, JobPostingSelectors())
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, text, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, text, unwanted)
			}
		})
	}
}

func TestExtractMainText_NoiseSelectors(t *testing.T) {
	html := `<html><body><main>
		<p>Build distributed systems in Go.</p>
		<form id="application-form">Apply now</form>
		<div class="eeo-statement">Equal opportunity text</div>
	</main></body></html>`

	_, noise := SelectorsFor(PlatformUnknown)
	text, err := ExtractMainText(html, JobPostingSelectors(), noise...)
	require.NoError(t, err)
	assert.Contains(t, text, "distributed systems")
	assert.NotContains(t, text, "Apply now")
	assert.NotContains(t, text, "Equal opportunity")
}

func TestCollapseLines(t *testing.T) {
	in := "  Requirements  \n\n\n\tGo, Postgres\t\n   \nRemote OK"
	assert.Equal(t, "Requirements\nGo, Postgres\nRemote OK", collapseLines(in))
}

func TestJobPostingSelectors(t *testing.T) {
	selectors := JobPostingSelectors()
	assert.Contains(t, selectors, ".job-description")
	assert.Contains(t, selectors, "#job-content")
	assert.Contains(t, selectors, "main")
}
