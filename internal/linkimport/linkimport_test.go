package linkimport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripHTMLExtractsVisibleText(t *testing.T) {
	page := `<html>
	<head>
		<title>Team wiki</title>
		<style>body { color: red }</style>
		<script>console.log("tracking")</script>
	</head>
	<body>
		<h1>Release checklist</h1>
		<p>Tag the build and <b>notify</b> oncall.</p>
		<noscript>enable javascript</noscript>
	</body>
	</html>`

	text, err := StripHTML(strings.NewReader(page))
	require.NoError(t, err)

	assert.Contains(t, text, "Team wiki")
	assert.Contains(t, text, "Release checklist")
	assert.Contains(t, text, "notify")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "enable javascript")
}

func TestStripHTMLJoinsTextWithNewlines(t *testing.T) {
	text, err := StripHTML(strings.NewReader("<p>first</p><p>second</p>"))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", text)
}

func TestStripHTMLEmptyDocument(t *testing.T) {
	text, err := StripHTML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestFetchText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>imported content</p></body></html>"))
	}))
	defer server.Close()

	text, err := NewFetcher().FetchText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "imported content", text)
}

func TestFetchTextRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher().FetchText(context.Background(), server.URL)
	assert.Error(t, err)
}
