package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/docchain/cmd/docfetch"
	"github.com/fwojciec/docchain/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "docfetch")
	assert.Contains(t, stdout.String(), "url")
	assert.Contains(t, stdout.String(), "--max-pages")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_RejectsUnknownExtractor(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"https://example.com/docs", "--extractor", "magic"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_FetchesChainFromServer(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"/guide/intro": `<html><head><title>Intro</title></head><body>
<main><h1>Intro</h1><p>Welcome to the guide.</p></main>
<a rel="next" href="/guide/setup">Setup</a>
</body></html>`,
		"/guide/setup": `<html><head><title>Setup</title></head><body>
<main><h1>Setup</h1><p>Install the tool.</p></main>
</body></html>`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	err := main.NewMain().Run(context.Background(),
		[]string{server.URL + "/guide/intro", dir, "--rate", "0", "--title", "Guide"},
		&stdout, &stderr)

	require.NoError(t, err)
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	path := filepath.Join(dir, u.Host, "guide", "intro.md")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "title: Guide")
	assert.Contains(t, string(content), "Welcome to the guide.")
	assert.Contains(t, string(content), "Install the tool.")
	assert.FileExists(t, path+fs.IndexSuffix)
	assert.Contains(t, stdout.String(), "Saved 2 pages")
}
