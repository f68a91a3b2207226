package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobPosting_ExtractsMainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`
			<html>
				<body>
					<nav>Jobs | About | Contact</nav>
					<div class="job-description">
						<h1>Senior Go Engineer</h1>
						<p>We need 5+ years of experience with Go and PostgreSQL.</p>
					</div>
					<form id="application-form">Apply here</form>
				</body>
			</html>`))
	}))
	defer server.Close()

	result, err := JobPosting(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, server.URL, result.URL)
	assert.Equal(t, PlatformUnknown, result.Platform)
	assert.Contains(t, result.Text, "Senior Go Engineer")
	assert.Contains(t, result.Text, "5+ years of experience")
	assert.NotContains(t, result.Text, "Apply here")
	assert.NotContains(t, result.Text, "Jobs | About")
}

func TestJobPosting_InvalidURL(t *testing.T) {
	_, err := JobPosting(context.Background(), "not-a-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestJobPosting_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := JobPosting(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestJobPosting_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>app()</script></body></html>`))
	}))
	defer server.Close()

	_, err := JobPosting(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content extracted")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("   \n  "))
	assert.True(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength-1)))
	assert.False(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength)))
}
