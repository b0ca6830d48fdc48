// Package chapterdex indexes the words of OCR'd chapters by page and keeps a
// master index of every word across chapters.
package chapterdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/chapterdex/internal/db"
	dbRedis "github.com/kailas-cloud/chapterdex/internal/db/redis"
	dombatch "github.com/kailas-cloud/chapterdex/internal/domain/batch"
	"github.com/kailas-cloud/chapterdex/internal/domain/master"
	chapterrepo "github.com/kailas-cloud/chapterdex/internal/repository/chapter"
	masterrepo "github.com/kailas-cloud/chapterdex/internal/repository/master"
	"github.com/kailas-cloud/chapterdex/internal/repository/ocrpage"
	indexuc "github.com/kailas-cloud/chapterdex/internal/usecase/index"
	lookupuc "github.com/kailas-cloud/chapterdex/internal/usecase/lookup"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "chapterdex:"
)

// Hit is where a word appears: chapter key -> ascending page numbers.
type Hit = lookupuc.Hit

// Stats summarizes the master index.
type Stats = master.Stats

// Summary counts per-item outcomes of a batch.
type Summary = dombatch.Summary

// Client is the chapterdex SDK entry point.
type Client struct {
	store  db.Store // nil for the file backend
	pages  *ocrpage.Repo
	index  *indexuc.Service
	lookup *lookupuc.Service
}

// New creates a Client. Exactly one of WithMasterFile, WithValkey or WithRedis is required.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	switch cfg.driver {
	case "file":
		if cfg.masterPath == "" {
			return nil, errors.New("chapterdex: master file path required")
		}
		repo := masterrepo.NewFile(cfg.masterPath)
		return wireClient(nil, repo, func() indexuc.StagedMaster { return repo.Stage() }, cfg), nil
	case "valkey", "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.addrs, Password: cfg.password})
		if err != nil {
			return nil, fmt.Errorf("chapterdex: create %s store: %w", cfg.driver, err)
		}
		if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("chapterdex: %s not ready: %w", cfg.driver, err)
		}
		repo := masterrepo.NewKV(store, cfg.keyPrefix)
		return wireClient(store, repo, func() indexuc.StagedMaster { return repo.Stage() }, cfg), nil
	case "":
		return nil, errors.New("chapterdex: master store required (use WithMasterFile, WithValkey or WithRedis)")
	default:
		return nil, fmt.Errorf("chapterdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, m indexuc.MasterStore, stage func() indexuc.StagedMaster, cfg *clientConfig) *Client {
	svc := indexuc.New(chapterrepo.New(), m, cfg.logger).WithStaging(stage)
	if cfg.masterPath != "" {
		svc = svc.WithExclude(cfg.masterPath)
	}
	return &Client{
		store:  store,
		pages:  ocrpage.New(),
		index:  svc,
		lookup: lookupuc.New(m),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks key-value store connectivity. It is a no-op for the file backend.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// BuildChapter indexes the page results in pageDir as chapter num, writes the
// chapter document to out and merges it into the master index.
func (c *Client) BuildChapter(ctx context.Context, num float64, pageDir, out string) (Summary, error) {
	pages, err := c.pages.Read(ctx, pageDir)
	if err != nil {
		return Summary{}, fmt.Errorf("read pages: %w", err)
	}
	_, results, err := c.index.Index(ctx, num, pages, out)
	return dombatch.Summarize(results), err
}

// MergeChapter merges one chapter document into the master index.
func (c *Client) MergeChapter(ctx context.Context, path string) error {
	return c.index.MergeFile(ctx, path)
}

// MergeDir merges every chapter document in dir.
func (c *Client) MergeDir(ctx context.Context, dir string) (Summary, error) {
	results, err := c.index.BulkMerge(ctx, dir)
	return dombatch.Summarize(results), err
}

// Regenerate rebuilds every chapter document in dir and the master index.
func (c *Client) Regenerate(ctx context.Context, dir string) (Summary, error) {
	results, err := c.index.RegenerateAll(ctx, dir)
	return dombatch.Summarize(results), err
}

// RemoveChapter drops chapter num from the master index.
func (c *Client) RemoveChapter(ctx context.Context, num float64) error {
	_, err := c.index.RemoveChapter(ctx, num)
	return err
}

// Lookup returns where word appears.
func (c *Client) Lookup(ctx context.Context, word string) (*Hit, error) {
	return c.lookup.Word(ctx, word)
}

// Stats summarizes the master index.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	return c.lookup.Stats(ctx)
}
