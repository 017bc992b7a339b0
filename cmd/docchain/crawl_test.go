package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/docchain"
	main "github.com/fwojciec/docchain/cmd/docchain"
	"github.com/fwojciec/docchain/crawl"
	"github.com/fwojciec/docchain/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainPage is one page of an in-memory documentation chain.
type chainPage struct {
	title   string
	content string
	next    string
}

// chainCrawler returns a crawler over pages keyed by URL. URLs missing from
// pages fail with HTTP 404.
func chainCrawler(pages map[string]chainPage) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if _, ok := pages[url]; !ok {
					return "", docchain.Errorf(docchain.EUNAVAILABLE, "HTTP 404")
				}
				return "<html>" + url + "</html>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(_, pageURL string) (*docchain.ExtractResult, error) {
				return &docchain.ExtractResult{Title: pages[pageURL].title, ContentHTML: "<main/>"}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(_, pageURL string) (string, error) {
				return pages[pageURL].content, nil
			},
		},
		Successors: &mock.SuccessorFinder{
			FindSuccessorsFn: func(baseURL, _ string) ([]string, error) {
				if next := pages[baseURL].next; next != "" {
					return []string{next}, nil
				}
				return nil, nil
			},
		},
	}
}

func twoPageChain() map[string]chainPage {
	return map[string]chainPage{
		"https://example.com/guide/intro": {
			title: "Intro", content: "Welcome to the guide.", next: "https://example.com/guide/setup",
		},
		"https://example.com/guide/setup": {
			title: "Setup", content: "Install the tool.",
		},
	}
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates document from crawled chain", func(t *testing.T) {
		t.Parallel()

		var created *docchain.Document
		documents := &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, doc *docchain.Document) error {
				doc.ID = "doc-1"
				created = doc
				return nil
			},
		}
		tokens := &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, _ string) (int, error) {
				return 1234, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documents,
			Crawler:   chainCrawler(twoPageChain()),
			Tokens:    tokens,
		}

		cmd := &main.CrawlCmd{URL: "https://example.com/guide/intro", MaxPages: 10, Title: "Guide"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Guide", created.Title)
		require.Len(t, created.Pages, 2)
		assert.Equal(t, "Setup", created.Pages[1].Title)
		assert.Contains(t, stdout.String(), `Saved "Guide" (doc-1)`)
		assert.Contains(t, stdout.String(), "2 pages")
		assert.Contains(t, stdout.String(), "~1k tokens")
	})

	t.Run("respects max pages", func(t *testing.T) {
		t.Parallel()

		var created *docchain.Document
		documents := &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, doc *docchain.Document) error {
				created = doc
				return nil
			},
		}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Documents: documents,
			Crawler:   chainCrawler(twoPageChain()),
		}

		cmd := &main.CrawlCmd{URL: "https://example.com/guide/intro", MaxPages: 1}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Len(t, created.Pages, 1)
	})

	t.Run("replaces document and keeps its title when --update is set", func(t *testing.T) {
		t.Parallel()

		var replacedID string
		var replaced *docchain.Document
		documents := &mock.DocumentService{
			FindDocumentByIDFn: func(_ context.Context, id string) (*docchain.Document, error) {
				return &docchain.Document{ID: id, Title: "Old Title"}, nil
			},
			ReplaceDocumentFn: func(_ context.Context, id string, doc *docchain.Document) (*docchain.Document, error) {
				replacedID = id
				replaced = doc
				doc.ID = id
				return doc, nil
			},
			CreateDocumentFn: func(_ context.Context, _ *docchain.Document) error {
				t.Error("CreateDocument should not be called on update")
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documents,
			Crawler:   chainCrawler(twoPageChain()),
		}

		cmd := &main.CrawlCmd{URL: "https://example.com/guide/intro", MaxPages: 10, Update: "doc-7"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "doc-7", replacedID)
		require.NotNil(t, replaced)
		assert.Equal(t, "Old Title", replaced.Title)
		assert.Contains(t, stdout.String(), `Updated "Old Title" (doc-7)`)
	})

	t.Run("returns error when update target does not exist", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			FindDocumentByIDFn: func(_ context.Context, _ string) (*docchain.Document, error) {
				return nil, docchain.Errorf(docchain.ENOTFOUND, "document not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: documents,
			Crawler:   chainCrawler(twoPageChain()),
		}

		cmd := &main.CrawlCmd{URL: "https://example.com/guide/intro", MaxPages: 10, Update: "missing"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, docchain.ENOTFOUND, docchain.ErrorCode(err))
		assert.Contains(t, stderr.String(), "document not found")
	})

	t.Run("reports failures and errors when no page could be crawled", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, _ *docchain.Document) error {
				t.Error("CreateDocument should not be called for an empty crawl")
				return nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: documents,
			Crawler:   chainCrawler(map[string]chainPage{}),
		}

		cmd := &main.CrawlCmd{URL: "https://example.com/gone", MaxPages: 10}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, docchain.ENOTFOUND, docchain.ErrorCode(err))
		assert.Contains(t, stderr.String(), "skip https://example.com/gone: HTTP 404")
		assert.Contains(t, stderr.String(), "no pages could be crawled")
	})

	t.Run("rejects page cap above the limit before crawling", func(t *testing.T) {
		t.Parallel()

		crawler := chainCrawler(twoPageChain())
		crawler.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				t.Error("Fetch should not be called for an invalid request")
				return "", nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: &mock.DocumentService{},
			Crawler:   crawler,
		}

		cmd := &main.CrawlCmd{URL: "https://example.com/guide/intro", MaxPages: docchain.MaxPagesLimit + 1}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, docchain.EINVALID, docchain.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("returns error when crawler is not configured", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		cmd := &main.CrawlCmd{URL: "https://example.com/guide/intro", MaxPages: 10}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, docchain.EINTERNAL, docchain.ErrorCode(err))
	})
}
