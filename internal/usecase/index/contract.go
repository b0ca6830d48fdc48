package index

import (
	"context"

	"github.com/kailas-cloud/chapterdex/internal/domain/chapter"
	"github.com/kailas-cloud/chapterdex/internal/domain/master"
)

// ChapterStore loads and saves chapter documents.
type ChapterStore interface {
	Load(ctx context.Context, path string) (*chapter.Index, error)
	Save(ctx context.Context, path string, idx *chapter.Index) error
	List(ctx context.Context, dir string) ([]string, error)
}

// MasterStore loads and saves the whole master index. Load returns an empty
// index when none is stored yet.
type MasterStore interface {
	Load(ctx context.Context) (*master.Index, error)
	Save(ctx context.Context, m *master.Index) error
	Delete(ctx context.Context) error
}

// StagedMaster is a side copy of the master index that replaces the live one on Commit.
type StagedMaster interface {
	MasterStore
	Commit(ctx context.Context) error
}
