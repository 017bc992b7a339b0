package docchain_test

import (
	"testing"

	"github.com/fwojciec/docchain"
	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		startURL string
		existing string
		want     string
	}{
		{"returns existing title unchanged", "https://example.com/docs/intro", "My  Custom title", "My  Custom title"},
		{"uses last path segment", "https://example.com/docs/getting-started", "", "Getting Started"},
		{"ignores trailing slash", "https://example.com/guide/", "", "Guide"},
		{"skips generic last segment for host name", "https://example.com/docs/", "", "Example"},
		{"treats index page as generic", "https://docs.python.org/tutorial/index.html", "", "Python"},
		{"drops leading www from host", "https://www.example.com/", "", "Example"},
		{"uses second-to-last host segment without path", "https://react.dev", "", "React"},
		{"falls back to first path segment for single-label host", "http://localhost:8080/guide/docs", "", "Guide"},
		{"falls back to host for single-label host without path", "http://localhost:8080/", "", "Localhost"},
		{"matches generic names case-insensitively", "https://example.com/Documentation", "", "Example"},
		{"uses default title for unparseable URL", "://bad url", "", docchain.DefaultTitle},
		{"uses default title for relative URL", "/docs/intro", "", docchain.DefaultTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, docchain.DeriveTitle(tt.startURL, tt.existing))
		})
	}
}

func TestDeriveTitle_KeepsVersionDots(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "V1.2", docchain.DeriveTitle("https://example.com/api/v1.2", ""))
}
