package db

import (
	"context"
	"time"
)

// Store is the key-value facade the master index can be kept in.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides whole-value key operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	// Rename atomically moves src over dst, replacing any value at dst.
	Rename(ctx context.Context, src, dst string) error
}
