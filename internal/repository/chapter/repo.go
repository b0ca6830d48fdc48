// Package chapter persists chapter index documents as files.
package chapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kailas-cloud/chapterdex/internal/domain"
	domchapter "github.com/kailas-cloud/chapterdex/internal/domain/chapter"
	"github.com/kailas-cloud/chapterdex/internal/repository/fsutil"
)

const docExt = ".json"

// Repo implements usecase/index.ChapterStore on the local filesystem.
type Repo struct{}

// New creates a chapter document repository.
func New() *Repo {
	return &Repo{}
}

// Load reads the chapter document at path.
func (r *Repo) Load(_ context.Context, path string) (*domchapter.Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("chapter %s: %w", path, domain.ErrMissingInput)
		}
		return nil, fmt.Errorf("read chapter %s: %w", path, err)
	}
	idx, err := domchapter.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("chapter %s: %w", path, err)
	}
	return idx, nil
}

// Save writes idx to path, replacing any existing document.
func (r *Repo) Save(_ context.Context, path string, idx *domchapter.Index) error {
	data, err := domchapter.Marshal(idx)
	if err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("save chapter %s: %w", path, err)
	}
	return nil
}

// List returns the chapter documents in dir in lexical file-name order.
func (r *Repo) List(_ context.Context, dir string) ([]string, error) {
	paths, err := fsutil.ListExt(dir, docExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("chapter dir %s: %w", dir, domain.ErrMissingInput)
		}
		return nil, fmt.Errorf("list chapter dir %s: %w", dir, err)
	}
	return paths, nil
}
