package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docchain"
	main "github.com/fwojciec/docchain/cmd/docchain"
	"github.com/fwojciec/docchain/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes markdown file with index sidecar", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documentsWith(storedDocument()),
		}

		err := (&main.ExportCmd{ID: "doc-1", Dir: dir}).Run(deps)

		require.NoError(t, err)
		path := filepath.Join(dir, "example.com", "guide", "intro.md")
		assert.FileExists(t, path)
		assert.FileExists(t, path+fs.IndexSuffix)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "title: Guide")
		assert.Contains(t, string(content), "Install the tool.")
		assert.Contains(t, stdout.String(), path)
	})

	t.Run("returns error when document not found", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Documents: documentsWith(storedDocument()),
		}

		err := (&main.ExportCmd{ID: "missing", Dir: t.TempDir()}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docchain.ENOTFOUND, docchain.ErrorCode(err))
	})
}
