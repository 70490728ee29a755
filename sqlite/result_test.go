package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/inlink"
	"github.com/fwojciec/inlink/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult() *inlink.Result {
	return &inlink.Result{
		SitemapURL: "https://ex.com/sitemap.xml",
		Keywords:   []string{"shoes", "boots"},
		URLs:       []string{"https://ex.com/a", "https://ex.com/b"},
		Occurrences: []inlink.Occurrence{
			{URL: "https://ex.com/a", Type: inlink.OccurrenceHeading, Keyword: "shoes", Context: "best shoes guide", Paragraph: "best shoes guide"},
			{URL: "https://ex.com/a", Type: inlink.OccurrenceParagraph, Keyword: "shoes", Context: "sell shoes online.", Paragraph: "We sell shoes online."},
			{URL: "https://ex.com/a", Type: inlink.OccurrenceParagraph, Keyword: "shoes", Context: "cheap shoes", Paragraph: "We sell shoes online. Cheap shoes"},
		},
		Failures: []inlink.PageFailure{
			{URL: "https://ex.com/b", Err: errors.New("connection reset")},
		},
	}
}

func countRows(t *testing.T, db *sqlite.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestResultStore_SaveAndCommit(t *testing.T) {
	t.Parallel()

	t.Run("stores run, occurrences and failures", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		store := sqlite.NewResultStore(db)
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, testResult()))
		require.NoError(t, store.Commit())

		_, err := uuid.Parse(store.RunID())
		require.NoError(t, err, "run id should be a UUID")

		var sitemapURL, keywords string
		var urlCount, failureCount int
		err = db.QueryRowContext(ctx,
			"SELECT sitemap_url, keywords, url_count, failure_count FROM runs WHERE id = ?", store.RunID(),
		).Scan(&sitemapURL, &keywords, &urlCount, &failureCount)
		require.NoError(t, err)
		assert.Equal(t, "https://ex.com/sitemap.xml", sitemapURL)
		assert.Equal(t, "shoes\nboots", keywords)
		assert.Equal(t, 2, urlCount)
		assert.Equal(t, 1, failureCount)

		rows, err := db.QueryContext(ctx,
			"SELECT occurrence_type, context, paragraph_hash FROM occurrences WHERE run_id = ? ORDER BY position", store.RunID())
		require.NoError(t, err)
		defer rows.Close()

		var types, contexts, hashes []string
		for rows.Next() {
			var typ, snippet, hash string
			require.NoError(t, rows.Scan(&typ, &snippet, &hash))
			types = append(types, typ)
			contexts = append(contexts, snippet)
			hashes = append(hashes, hash)
		}
		require.NoError(t, rows.Err())

		assert.Equal(t, []string{"H1", "Paragraph", "Paragraph"}, types)
		assert.Equal(t, []string{"best shoes guide", "sell shoes online.", "cheap shoes"}, contexts)
		for _, h := range hashes {
			assert.Len(t, h, 16)
		}
		assert.NotEqual(t, hashes[1], hashes[2], "different paragraphs hash differently")

		var failure string
		err = db.QueryRowContext(ctx, "SELECT error FROM failures WHERE url = ?", "https://ex.com/b").Scan(&failure)
		require.NoError(t, err)
		assert.Equal(t, "connection reset", failure)
	})

	t.Run("replaces the previous run", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		ctx := context.Background()

		first := sqlite.NewResultStore(db)
		require.NoError(t, first.Save(ctx, testResult()))
		require.NoError(t, first.Commit())

		second := sqlite.NewResultStore(db)
		require.NoError(t, second.Save(ctx, &inlink.Result{
			SitemapURL: "https://other.com/sitemap.xml",
			Keywords:   []string{"hats"},
		}))
		require.NoError(t, second.Commit())

		assert.Equal(t, 1, countRows(t, db, "runs"))
		assert.Equal(t, 0, countRows(t, db, "occurrences"))
		assert.Equal(t, 0, countRows(t, db, "failures"))
		assert.NotEqual(t, first.RunID(), second.RunID())
	})

	t.Run("rejects a second save before commit", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		store := sqlite.NewResultStore(db)
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, testResult()))
		err := store.Save(ctx, testResult())
		assert.Equal(t, inlink.EINTERNAL, inlink.ErrorCode(err))
		require.NoError(t, store.Abort())
	})

	t.Run("commit without save fails", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewResultStore(openDB(t))
		assert.Error(t, store.Commit())
	})
}

func TestResultStore_Abort(t *testing.T) {
	t.Parallel()

	t.Run("discards the pending run and keeps the previous one", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		ctx := context.Background()

		committed := sqlite.NewResultStore(db)
		require.NoError(t, committed.Save(ctx, testResult()))
		require.NoError(t, committed.Commit())

		aborted := sqlite.NewResultStore(db)
		require.NoError(t, aborted.Save(ctx, &inlink.Result{SitemapURL: "https://other.com/sitemap.xml"}))
		require.NoError(t, aborted.Abort())

		var id string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT id FROM runs").Scan(&id))
		assert.Equal(t, committed.RunID(), id)
		assert.Equal(t, 3, countRows(t, db, "occurrences"))
		assert.Empty(t, aborted.RunID())
	})

	t.Run("is a no-op without a pending save", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewResultStore(openDB(t))
		assert.NoError(t, store.Abort())
	})
}
