// Package master persists the master index document, either as a file or as a
// single value in a key-value store. Both backends can stage a full rebuild
// and swap it in once it completes.
package master

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	dommaster "github.com/kailas-cloud/chapterdex/internal/domain/master"
	"github.com/kailas-cloud/chapterdex/internal/repository/fsutil"
)

const stagingSuffix = ".regen"

// FileRepo keeps the master index in one JSON file.
type FileRepo struct {
	path string
	live string // set on a staging repo: the path Commit renames onto
}

// NewFile creates a file-backed master repository.
func NewFile(path string) *FileRepo {
	return &FileRepo{path: path}
}

// Path returns the file the repository reads and writes.
func (r *FileRepo) Path() string { return r.path }

// Load reads the master index. A missing file yields an empty index; a file
// that cannot be decoded yields domain.ErrMasterUnreadable.
func (r *FileRepo) Load(_ context.Context) (*dommaster.Index, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dommaster.New(), nil
		}
		return nil, fmt.Errorf("read master %s: %w", r.path, err)
	}
	m, err := dommaster.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("master %s: %w", r.path, err)
	}
	return m, nil
}

// Save replaces the master index file.
func (r *FileRepo) Save(_ context.Context, m *dommaster.Index) error {
	data, err := dommaster.Marshal(m)
	if err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(r.path, data); err != nil {
		return fmt.Errorf("save master: %w", err)
	}
	return nil
}

// Delete removes the master index file. A missing file is not an error.
func (r *FileRepo) Delete(_ context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete master %s: %w", r.path, err)
	}
	return nil
}

// Stage returns a repository writing to a side file next to the live one.
func (r *FileRepo) Stage() *FileRepo {
	return &FileRepo{path: r.path + stagingSuffix, live: r.path}
}

// Commit renames a staging file over the live master index.
func (r *FileRepo) Commit(_ context.Context) error {
	if r.live == "" {
		return fmt.Errorf("commit %s: not a staging repository", r.path)
	}
	if err := os.Rename(r.path, r.live); err != nil {
		return fmt.Errorf("commit master %s: %w", r.live, err)
	}
	return nil
}
