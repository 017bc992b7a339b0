package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docchain/mock"
	dcslog "github.com/fwojciec/docchain/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSuccessorFinder_FindSuccessors(t *testing.T) {
	t.Parallel()

	t.Run("logs candidate count and first successor", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SuccessorFinder{
			FindSuccessorsFn: func(baseURL, html string) ([]string, error) {
				return []string{"https://example.com/b", "https://example.com/c"}, nil
			},
		}

		finder := dcslog.NewLoggingSuccessorFinder(inner, logger)
		urls, err := finder.FindSuccessors("https://example.com/a", "<html></html>")

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		output := buf.String()
		assert.Contains(t, output, "successors")
		assert.Contains(t, output, "url=https://example.com/a")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "next=https://example.com/b")
	})

	t.Run("logs end of chain without next", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SuccessorFinder{
			FindSuccessorsFn: func(baseURL, html string) ([]string, error) {
				return nil, nil
			},
		}

		finder := dcslog.NewLoggingSuccessorFinder(inner, logger)
		_, err := finder.FindSuccessors("https://example.com/a", "")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "count=0")
		assert.NotContains(t, buf.String(), "next=")
	})

	t.Run("logs error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SuccessorFinder{
			FindSuccessorsFn: func(baseURL, html string) ([]string, error) {
				return nil, errors.New("bad html")
			},
		}

		finder := dcslog.NewLoggingSuccessorFinder(inner, logger)
		_, err := finder.FindSuccessors("https://example.com/a", "")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"bad html\"")
	})
}
