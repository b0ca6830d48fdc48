package health

import (
	"context"

	"github.com/kailas-cloud/chapterdex/internal/domain/master"
)

// DBPinger checks key-value store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// MasterLoader reads the master index.
type MasterLoader interface {
	Load(ctx context.Context) (*master.Index, error)
}
