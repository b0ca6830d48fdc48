package chapterdex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestNew_NoStore(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error when no master store is configured")
	}
}

func TestNew_EmptyMasterPath(t *testing.T) {
	if _, err := New(WithMasterFile("")); err == nil {
		t.Fatal("expected error for empty master path")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	if _, err := New(func(c *clientConfig) { c.driver = "etcd" }); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret")(cfg)
	if cfg.driver != "valkey" || cfg.addrs[0] != "localhost:6379" || cfg.password != "secret" {
		t.Errorf("valkey options = %+v", cfg)
	}

	cfg2 := &clientConfig{}
	WithRedis("localhost:6380", "pass")(cfg2)
	if cfg2.driver != "redis" {
		t.Errorf("driver = %q, want redis", cfg2.driver)
	}
	WithKeyPrefix("manga:")(cfg2)
	if cfg2.keyPrefix != "manga:" {
		t.Errorf("keyPrefix = %q", cfg2.keyPrefix)
	}

	cfg3 := &clientConfig{}
	WithMasterFile("/tmp/master.json")(cfg3)
	if cfg3.driver != "file" || cfg3.masterPath != "/tmp/master.json" {
		t.Errorf("file options = %+v", cfg3)
	}
	WithLogger(zap.NewNop())(cfg3)
	if cfg3.logger == nil {
		t.Error("expected logger to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping on file backend: %v", err)
	}
}

func TestClient_FileBackendRoundTrip(t *testing.T) {
	dir := t.TempDir()
	pages := filepath.Join(dir, "ocr")
	chapters := filepath.Join(dir, "chapters")
	if err := os.MkdirAll(pages, 0o755); err != nil {
		t.Fatal(err)
	}
	page := `{"width": 800, "height": 1200, "lines": [
		{"text": "TANAKA-", "boundingBox": [100,100,200,100,200,120,100,120]},
		{"text": "KLIN SAYS HI", "boundingBox": [100,125,300,125,300,145,100,145]}
	]}`
	if err := os.WriteFile(filepath.Join(pages, "1.json"), []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := New(WithMasterFile(filepath.Join(dir, "master.json")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	sum, err := c.BuildChapter(ctx, 7, pages, filepath.Join(chapters, "7.json"))
	if err != nil {
		t.Fatalf("BuildChapter: %v", err)
	}
	if sum.OK != 1 {
		t.Errorf("summary = %+v", sum)
	}

	hit, err := c.Lookup(ctx, "tanaka-kun")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if pages := hit.Locations["7-0"]; len(pages) != 1 || pages[0] != 1 {
		t.Errorf("TANAKA-KUN = %v", hit.Locations)
	}

	st, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(st.Chapters) != 1 || st.Chapters[0] != "7-0" {
		t.Errorf("chapters = %v", st.Chapters)
	}

	if _, err := c.Regenerate(ctx, chapters); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if _, err := c.Lookup(ctx, "tanaka-kun"); err != nil {
		t.Errorf("Lookup after regenerate: %v", err)
	}

	if err := c.RemoveChapter(ctx, 7); err != nil {
		t.Fatalf("RemoveChapter: %v", err)
	}
	if _, err := c.Lookup(ctx, "hi"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := c.MergeChapter(ctx, filepath.Join(chapters, "7.json")); err != nil {
		t.Fatalf("MergeChapter: %v", err)
	}
	if sum, err := c.MergeDir(ctx, chapters); err != nil || sum.OK != 1 {
		t.Errorf("MergeDir = %+v, %v", sum, err)
	}
	if _, err := c.Lookup(ctx, "says"); err != nil {
		t.Errorf("Lookup after merge: %v", err)
	}
}
