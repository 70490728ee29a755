package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/inlink"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ inlink.ResultStore = (*ResultStore)(nil)

// ResultStore writes one scan result into the database, replacing any
// earlier run. Nothing is visible to other connections until Commit.
type ResultStore struct {
	db    *DB
	tx    *sql.Tx
	runID string
	now   func() time.Time
}

// NewResultStore creates a new ResultStore.
func NewResultStore(db *DB) *ResultStore {
	return &ResultStore{db: db, now: time.Now}
}

// RunID returns the id assigned by the last Save.
func (s *ResultStore) RunID() string {
	return s.runID
}

// hashParagraph returns the xxHash of a paragraph as a hex string.
func hashParagraph(paragraph string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(paragraph))
}

// Save replaces the stored run with result inside a pending transaction.
func (s *ResultStore) Save(ctx context.Context, result *inlink.Result) error {
	if s.tx != nil {
		return inlink.Errorf(inlink.EINTERNAL, "result already saved")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	runID := uuid.New().String()
	if err := writeRun(ctx, tx, runID, result, s.now().UTC()); err != nil {
		_ = tx.Rollback()
		return err
	}

	s.tx = tx
	s.runID = runID
	return nil
}

func writeRun(ctx context.Context, tx *sql.Tx, runID string, result *inlink.Result, createdAt time.Time) error {
	for _, table := range []string{"occurrences", "failures", "runs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, sitemap_url, keywords, url_count, failure_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, result.SitemapURL, strings.Join(result.Keywords, "\n"), len(result.URLs),
		len(result.Failures), createdAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO occurrences (run_id, position, url, occurrence_type, keyword, context, paragraph, paragraph_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing occurrence insert: %w", err)
	}
	defer stmt.Close()

	for i, o := range result.Occurrences {
		if _, err := stmt.ExecContext(ctx, runID, i, o.URL, string(o.Type), o.Keyword,
			o.Context, o.Paragraph, hashParagraph(o.Paragraph)); err != nil {
			return fmt.Errorf("inserting occurrence %d: %w", i, err)
		}
	}

	for _, f := range result.Failures {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO failures (run_id, url, error) VALUES (?, ?, ?)",
			runID, f.URL, inlink.ErrorMessage(f.Err)); err != nil {
			return fmt.Errorf("inserting failure: %w", err)
		}
	}

	return nil
}

// Commit makes the saved run permanent.
func (s *ResultStore) Commit() error {
	if s.tx == nil {
		return inlink.Errorf(inlink.EINTERNAL, "no pending result to commit")
	}
	tx := s.tx
	s.tx = nil
	return tx.Commit()
}

// Abort discards the saved run. It is a no-op if nothing is pending.
func (s *ResultStore) Abort() error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	s.runID = ""
	return tx.Rollback()
}
