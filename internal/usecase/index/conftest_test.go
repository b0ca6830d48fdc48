package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/chapterdex/internal/domain"
	"github.com/kailas-cloud/chapterdex/internal/domain/chapter"
	"github.com/kailas-cloud/chapterdex/internal/domain/master"
	"github.com/kailas-cloud/chapterdex/internal/domain/ocr"
)

// --- chapter store ---

type mockChapters struct {
	docs    map[string][]byte
	saveErr map[string]error
	saves   int
}

func newMockChapters() *mockChapters {
	return &mockChapters{docs: map[string][]byte{}, saveErr: map[string]error{}}
}

func (m *mockChapters) Load(_ context.Context, p string) (*chapter.Index, error) {
	data, ok := m.docs[p]
	if !ok {
		return nil, fmt.Errorf("chapter %s: %w", p, domain.ErrMissingInput)
	}
	return chapter.Unmarshal(data)
}

func (m *mockChapters) Save(_ context.Context, p string, idx *chapter.Index) error {
	if err := m.saveErr[p]; err != nil {
		return err
	}
	data, err := chapter.Marshal(idx)
	if err != nil {
		return err
	}
	m.docs[p] = data
	m.saves++
	return nil
}

func (m *mockChapters) List(_ context.Context, dir string) ([]string, error) {
	var out []string
	for p := range m.docs {
		if path.Dir(p) == dir {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("chapter dir %s: %w", dir, domain.ErrMissingInput)
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockChapters) put(t *testing.T, p string, idx *chapter.Index) {
	t.Helper()
	data, err := chapter.Marshal(idx)
	if err != nil {
		t.Fatal(err)
	}
	m.docs[p] = data
}

// --- master store ---

type mockMaster struct {
	data    []byte
	loadErr error
	saveErr error
	saves   int
	deletes int
}

func (m *mockMaster) Load(_ context.Context) (*master.Index, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.data == nil {
		return master.New(), nil
	}
	return master.Unmarshal(m.data)
}

func (m *mockMaster) Save(_ context.Context, idx *master.Index) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := master.Marshal(idx)
	if err != nil {
		return err
	}
	m.data = data
	m.saves++
	return nil
}

func (m *mockMaster) Delete(_ context.Context) error {
	m.data = nil
	m.deletes++
	return nil
}

func (m *mockMaster) index(t *testing.T) *master.Index {
	t.Helper()
	idx, err := m.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

type mockStaged struct {
	mockMaster
	live    *mockMaster
	commits int
}

func (m *mockStaged) Commit(_ context.Context) error {
	m.live.data = m.data
	m.data = nil
	m.commits++
	return nil
}

// --- OCR fixtures ---

// ocrLine builds a recognized line; words are the whitespace-split text with the
// line polygon reused for each word.
func ocrLine(text string, box ...int) ocr.Line {
	l := ocr.Line{Text: text, BoundingBox: box}
	for _, w := range strings.Fields(text) {
		l.Words = append(l.Words, ocr.Word{Text: w, BoundingBox: box})
	}
	return l
}

// rect is an 8-number polygon clockwise from the top-left.
func rect(x1, y1, x2, y2 int) []int {
	return []int{x1, y1, x2, y1, x2, y2, x1, y2}
}

// source encodes lines the way the recognition service does: a one-element
// array carrying an embedded page label that must be ignored.
func source(t *testing.T, name string, label int, lines ...ocr.Line) ocr.Source {
	t.Helper()
	page := struct {
		Page   int        `json:"page"`
		Width  int        `json:"width"`
		Height int        `json:"height"`
		Lines  []ocr.Line `json:"lines"`
	}{Page: label, Width: 800, Height: 1200, Lines: lines}
	data, err := json.Marshal([]any{page})
	if err != nil {
		t.Fatal(err)
	}
	return ocr.Source{Name: name, Data: data}
}

func newTestService(chapters ChapterStore, m MasterStore) *Service {
	return New(chapters, m, zap.NewNop())
}

func compactJSON(dst *bytes.Buffer, src []byte) error {
	return json.Compact(dst, src)
}
