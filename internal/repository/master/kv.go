package master

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/chapterdex/internal/db"
	dommaster "github.com/kailas-cloud/chapterdex/internal/domain/master"
)

const masterKey = "master"

// store is the consumer interface for the key-value master index (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Rename(ctx context.Context, src, dst string) error
}

// KVRepo keeps the master index document under a single key.
type KVRepo struct {
	store store
	key   string
	live  string
}

// NewKV creates a key-value master repository. prefix namespaces the key.
func NewKV(s store, prefix string) *KVRepo {
	return &KVRepo{store: s, key: prefix + masterKey}
}

// Key returns the key the repository reads and writes.
func (r *KVRepo) Key() string { return r.key }

// Load reads the master index. An absent key yields an empty index.
func (r *KVRepo) Load(ctx context.Context) (*dommaster.Index, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dommaster.New(), nil
		}
		return nil, fmt.Errorf("get master %s: %w", r.key, err)
	}
	m, err := dommaster.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("master %s: %w", r.key, err)
	}
	return m, nil
}

// Save replaces the stored master index.
func (r *KVRepo) Save(ctx context.Context, m *dommaster.Index) error {
	data, err := dommaster.Marshal(m)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("set master %s: %w", r.key, err)
	}
	return nil
}

// Delete removes the stored master index.
func (r *KVRepo) Delete(ctx context.Context) error {
	if err := r.store.Del(ctx, r.key); err != nil {
		return fmt.Errorf("del master %s: %w", r.key, err)
	}
	return nil
}

// Stage returns a repository writing to a side key.
func (r *KVRepo) Stage() *KVRepo {
	return &KVRepo{store: r.store, key: r.key + stagingSuffix, live: r.key}
}

// Commit renames the staging key over the live one.
func (r *KVRepo) Commit(ctx context.Context) error {
	if r.live == "" {
		return fmt.Errorf("commit %s: not a staging repository", r.key)
	}
	if err := r.store.Rename(ctx, r.key, r.live); err != nil {
		return fmt.Errorf("commit master %s: %w", r.live, err)
	}
	return nil
}
