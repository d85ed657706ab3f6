package urlutil_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/dom-patcher/pkg/urlutil"
)

func mustParse(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return *u
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases scheme and host", "HTTPS://Example.COM/Path", "https://example.com/Path"},
		{"strips trailing slash", "https://example.com/docs/", "https://example.com/docs"},
		{"keeps root slash", "https://example.com/", "https://example.com/"},
		{"removes fragment", "https://example.com/page#section", "https://example.com/page"},
		{"removes query", "https://example.com/page?utm_source=x", "https://example.com/page"},
		{"removes default https port", "https://example.com:443/page", "https://example.com/page"},
		{"removes default http port", "http://example.com:80/page", "http://example.com/page"},
		{"keeps non-default port", "https://example.com:8443/page", "https://example.com:8443/page"},
		{"collapses repeated trailing slashes", "https://example.com/a///", "https://example.com/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical := urlutil.Canonicalize(mustParse(t, tt.input))
			assert.Equal(t, tt.expected, canonical.String())
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	input := mustParse(t, "HTTPS://Example.com:443/docs/?q=1#top")

	once := urlutil.Canonicalize(input)
	twice := urlutil.Canonicalize(once)

	assert.Equal(t, once, twice)
}

func TestCanonicalize_DoesNotMutateInput(t *testing.T) {
	input := mustParse(t, "https://Example.com/docs/")
	original := input

	urlutil.Canonicalize(input)

	assert.Equal(t, original, input)
}
