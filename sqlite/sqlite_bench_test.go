package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docchain"
	"github.com/fwojciec/docchain/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateDocument stores a document of the largest allowed chain,
// comparing the rollback journal with WAL.
func BenchmarkCreateDocument(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkCreateDocument(b, "DELETE")
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkCreateDocument(b, "WAL")
	})
}

func benchmarkCreateDocument(b *testing.B, journalMode string) {
	b.Helper()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	_, err := db.ExecContext(ctx, "PRAGMA journal_mode = "+journalMode)
	require.NoError(b, err)

	pages := make([]*docchain.Page, docchain.MaxPagesLimit)
	for i := range pages {
		pages[i] = &docchain.Page{
			URL:     fmt.Sprintf("https://example.com/docs/page%d", i),
			Title:   fmt.Sprintf("Page %d", i),
			Content: fmt.Sprintf("This is the content of page %d with some additional text to make it more realistic. Lorem ipsum dolor sit amet, consectetur adipiscing elit.", i),
		}
	}
	agg := docchain.Aggregate("https://example.com/docs", "Docs", pages)

	svc := sqlite.NewDocumentService(db)

	b.ResetTimer()
	for b.Loop() {
		if err := svc.CreateDocument(ctx, docchain.NewDocument(agg)); err != nil {
			b.Fatal(err)
		}
	}
}
