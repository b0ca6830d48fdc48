package lookup

import (
	"context"

	"github.com/kailas-cloud/chapterdex/internal/domain/master"
)

// MasterLoader reads the master index.
type MasterLoader interface {
	Load(ctx context.Context) (*master.Index, error)
}
