// Package ocrpage reads raw per-page recognition results from a directory.
package ocrpage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/kailas-cloud/chapterdex/internal/domain"
	"github.com/kailas-cloud/chapterdex/internal/domain/ocr"
	"github.com/kailas-cloud/chapterdex/internal/repository/fsutil"
)

const pageExt = ".json"

// Repo reads page results from the local filesystem.
type Repo struct{}

// New creates a page source repository.
func New() *Repo {
	return &Repo{}
}

// Read returns every page result in dir, ordered by file name with digit runs
// compared numerically (2.json before 10.json). A file that cannot be read is
// still returned, with Err set, so it keeps its page position.
func (r *Repo) Read(ctx context.Context, dir string) ([]ocr.Source, error) {
	paths, err := fsutil.ListExt(dir, pageExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("page dir %s: %w", dir, domain.ErrMissingInput)
		}
		return nil, fmt.Errorf("list page dir %s: %w", dir, err)
	}
	sort.SliceStable(paths, func(i, j int) bool {
		return naturalLess(filepath.Base(paths[i]), filepath.Base(paths[j]))
	})

	sources := make([]ocr.Source, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := ocr.Source{Name: filepath.Base(p)}
		src.Data, src.Err = os.ReadFile(p)
		sources = append(sources, src)
	}
	return sources, nil
}

// naturalLess orders strings treating runs of ASCII digits as numbers.
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		da, db := digitRun(a), digitRun(b)
		if da > 0 && db > 0 {
			na, nb := trimZeros(a[:da]), trimZeros(b[:db])
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			a, b = a[da:], b[db:]
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func digitRun(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}
