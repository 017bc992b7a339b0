package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/docchain"
	main "github.com/fwojciec/docchain/cmd/docchain"
	"github.com/fwojciec/docchain/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists documents with ID, title, URL and size", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, _ docchain.DocumentFilter) ([]*docchain.Document, error) {
				return []*docchain.Document{
					{ID: "doc-1", Title: "React Learn", URL: "https://react.dev/learn", WordCount: 12400},
					{ID: "doc-2", Title: "Go Tour", URL: "https://go.dev/tour", WordCount: 830},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documents,
		}

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "doc-1  React Learn  https://react.dev/learn  (12.4k words)")
		assert.Contains(t, output, "doc-2  Go Tour  https://go.dev/tour  (830 words)")
	})

	t.Run("passes title filter and limit to storage", func(t *testing.T) {
		t.Parallel()

		var got docchain.DocumentFilter
		documents := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, filter docchain.DocumentFilter) ([]*docchain.Document, error) {
				got = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Documents: documents,
		}

		err := (&main.ListCmd{Title: "react", Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Title)
		assert.Equal(t, "react", *got.Title)
		assert.Equal(t, 5, got.Limit)
	})

	t.Run("shows helpful message when no documents exist", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, _ docchain.DocumentFilter) ([]*docchain.Document, error) {
				return []*docchain.Document{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documents,
		}

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "docchain crawl")
	})

	t.Run("returns error when storage fails", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, _ docchain.DocumentFilter) ([]*docchain.Document, error) {
				return nil, errors.New("disk on fire")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: documents,
		}

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Internal error.")
	})
}
