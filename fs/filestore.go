// Package fs provides file-based storage for scan results.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/inlink"
)

// Ensure FileStore implements inlink.ResultStore at compile time.
var _ inlink.ResultStore = (*FileStore)(nil)

// EncodeFunc serializes a result to w.
type EncodeFunc func(w io.Writer, result *inlink.Result) error

// FileStore implements inlink.ResultStore with atomic update semantics.
// The result is encoded to path.tmp, then renamed over path on Commit.
type FileStore struct {
	path   string
	encode EncodeFunc
}

// NewFileStore creates a FileStore that writes to path using encode.
func NewFileStore(path string, encode EncodeFunc) *FileStore {
	return &FileStore{
		path:   path,
		encode: encode,
	}
}

// Path returns the final location of the file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) tempPath() string {
	return s.path + ".tmp"
}

// Save encodes result into the temporary file.
func (s *FileStore) Save(ctx context.Context, result *inlink.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	f, err := os.Create(s.tempPath())
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if err := s.encode(f, result); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing %s: %w", s.path, err)
	}
	return f.Close()
}

// Commit replaces the final file with the temporary one.
func (s *FileStore) Commit() error {
	return os.Rename(s.tempPath(), s.path)
}

// Abort removes the temporary file. The final file is left untouched.
func (s *FileStore) Abort() error {
	err := os.Remove(s.tempPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
