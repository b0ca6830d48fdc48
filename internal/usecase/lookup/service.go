package lookup

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/chapterdex/internal/domain"
	"github.com/kailas-cloud/chapterdex/internal/domain/master"
	"github.com/kailas-cloud/chapterdex/internal/domain/token"
)

// Hit is the answer to a word lookup.
type Hit struct {
	Word      string           `json:"word"`
	Locations master.Locations `json:"locations"`
}

// Service answers read-only queries against the master index.
type Service struct {
	master MasterLoader
}

// New creates a lookup service.
func New(m MasterLoader) *Service {
	return &Service{master: m}
}

// Word normalizes raw the same way indexing does and returns where it appears.
func (s *Service) Word(ctx context.Context, raw string) (*Hit, error) {
	key := token.Normalize(raw)
	if key == "" {
		return nil, fmt.Errorf("word %q: %w", raw, domain.ErrNotFound)
	}
	m, err := s.master.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load master: %w", err)
	}
	locs, ok := m.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("word %s: %w", key, domain.ErrNotFound)
	}
	return &Hit{Word: key, Locations: locs}, nil
}

// Stats summarizes the master index.
func (s *Service) Stats(ctx context.Context) (master.Stats, error) {
	m, err := s.master.Load(ctx)
	if err != nil {
		return master.Stats{}, fmt.Errorf("load master: %w", err)
	}
	return m.Stats(), nil
}
