package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/chapterdex/internal/db"
)

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.b().Get().Key(key).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set stores a value at the given key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.b().Set().Key(key).Value(rueidis.BinaryString(value)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del deletes a key. Deleting an absent key is not an error.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Rename moves src over dst.
func (s *Store) Rename(ctx context.Context, src, dst string) error {
	cmd := s.b().Rename().Key(src).Newkey(dst).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "no such key") {
			return db.ErrKeyNotFound
		}
		return &db.Error{Op: db.OpRename, Err: err}
	}
	return nil
}
