package fsutil

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "doc.json")

	if err := WriteAtomic(path, []byte("one")); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}
	if err := WriteAtomic(path, []byte("two")); err != nil {
		t.Fatalf("WriteAtomic overwrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "two" {
		t.Errorf("content = %q, want two", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestListExt(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"10.json", "2.json", "notes.txt", "1.JSON"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ListExt(dir, ".json")
	if err != nil {
		t.Fatalf("ListExt: %v", err)
	}
	want := []string{
		filepath.Join(dir, "1.JSON"),
		filepath.Join(dir, "10.json"),
		filepath.Join(dir, "2.json"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListExt = %v, want %v", got, want)
	}
}

func TestListExt_MissingDir(t *testing.T) {
	if _, err := ListExt(filepath.Join(t.TempDir(), "absent"), ".json"); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
