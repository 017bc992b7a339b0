package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/docchain"
	main "github.com/fwojciec/docchain/cmd/docchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints whole document by default", func(t *testing.T) {
		t.Parallel()

		doc := storedDocument()
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documentsWith(doc),
		}

		err := (&main.ReadCmd{ID: "doc-1"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, doc.Content+"\n", stdout.String())
	})

	t.Run("prints a single page", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documentsWith(storedDocument()),
		}

		err := (&main.ReadCmd{ID: "doc-1", Page: 2}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Install the tool.")
		assert.NotContains(t, stdout.String(), "Welcome")
	})

	t.Run("prints a word range", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documentsWith(storedDocument()),
		}

		err := (&main.ReadCmd{ID: "doc-1", Start: 0, End: 2}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "# Intro\n", stdout.String())
	})

	t.Run("returns error for unknown page", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: documentsWith(storedDocument()),
		}

		err := (&main.ReadCmd{ID: "doc-1", Page: 3}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docchain.ENOTFOUND, docchain.ErrorCode(err))
		assert.Contains(t, stderr.String(), "page 3 not found")
	})

	t.Run("returns error for out of range words", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Documents: documentsWith(storedDocument()),
		}

		err := (&main.ReadCmd{ID: "doc-1", Start: 5, End: 100000}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docchain.EINVALID, docchain.ErrorCode(err))
	})

	t.Run("rejects page combined with word range", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		err := (&main.ReadCmd{ID: "doc-1", Page: 1, End: 3}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docchain.EINVALID, docchain.ErrorCode(err))
	})
}
