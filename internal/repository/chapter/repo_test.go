package chapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/chapterdex/internal/domain"
	domchapter "github.com/kailas-cloud/chapterdex/internal/domain/chapter"
)

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	r := New()
	path := filepath.Join(t.TempDir(), "out", "4.5.json")

	idx := domchapter.New(4.5)
	idx.Pages = append(idx.Pages, domchapter.Page{Width: 10, Height: 20, Page: 1})
	idx.Words.Insert("HELLO", 1)

	if err := r.Save(ctx, path, idx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := r.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Chapter != 4.5 || len(got.Pages) != 1 || len(got.Words.Pages("HELLO")) != 1 {
		t.Errorf("unexpected index %+v", got)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, domain.ErrMissingInput) {
		t.Errorf("expected ErrMissingInput, got %v", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New().Load(context.Background(), path)
	if !errors.Is(err, domain.ErrMalformedDocument) {
		t.Errorf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2.json", "1.json", "readme.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	paths, err := New().List(context.Background(), dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 2 || filepath.Base(paths[0]) != "1.json" || filepath.Base(paths[1]) != "2.json" {
		t.Errorf("List = %v", paths)
	}
}

func TestList_MissingDir(t *testing.T) {
	_, err := New().List(context.Background(), filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, domain.ErrMissingInput) {
		t.Errorf("expected ErrMissingInput, got %v", err)
	}
}
