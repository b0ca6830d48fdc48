// Package master holds the cross-chapter word index: normalized word -> chapter
// key -> pages. Every operation here is pure; loading and saving belong to the
// repository layer.
package master

import (
	"slices"
	"sort"

	"github.com/kailas-cloud/chapterdex/internal/domain/chapter"
	"github.com/kailas-cloud/chapterdex/internal/domain/token"
)

// Locations maps a chapter key to the pages a word occurs on in that chapter.
type Locations map[string][]int

// Index is the persisted master document.
type Index struct {
	Words map[string]Locations `json:"mentionedWordLocation"`
}

// New returns an empty master index.
func New() *Index {
	return &Index{Words: map[string]Locations{}}
}

// Merge folds one chapter's word map into the index under chapter key key.
// Word keys are autocorrected again so documents built under older rules land
// on current keys. Page lists stay ascending and duplicate-free, which makes
// merging idempotent and order-independent.
func (m *Index) Merge(key string, words chapter.WordMap) int {
	if m.Words == nil {
		m.Words = map[string]Locations{}
	}
	added := 0
	for word, pages := range words {
		word = token.Autocorrect(word)
		if word == "" || len(pages) == 0 {
			continue
		}
		locs, ok := m.Words[word]
		if !ok || locs == nil {
			locs = Locations{}
			m.Words[word] = locs
		}
		before := len(locs[key])
		locs[key] = union(locs[key], pages)
		added += len(locs[key]) - before
	}
	return added
}

// RemoveChapter drops chapter key from every word and removes words left with no chapters.
// It returns the number of words that referenced the chapter.
func (m *Index) RemoveChapter(key string) int {
	removed := 0
	for word, locs := range m.Words {
		if _, ok := locs[key]; !ok {
			continue
		}
		delete(locs, key)
		removed++
		if len(locs) == 0 {
			delete(m.Words, word)
		}
	}
	return removed
}

// Lookup returns the locations of an already normalized word.
func (m *Index) Lookup(word string) (Locations, bool) {
	locs, ok := m.Words[word]
	return locs, ok
}

// Chapters returns every chapter key present in the index, sorted.
func (m *Index) Chapters() []string {
	seen := map[string]struct{}{}
	for _, locs := range m.Words {
		for key := range locs {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Stats summarizes the index.
type Stats struct {
	Words    int      `json:"words"`
	Chapters []string `json:"chapters"`
}

// Stats returns the word count and the chapter keys.
func (m *Index) Stats() Stats {
	return Stats{Words: len(m.Words), Chapters: m.Chapters()}
}

// union returns the sorted, duplicate-free union of dst and src. dst may be
// reused; src is never aliased.
func union(dst, src []int) []int {
	out := make([]int, 0, len(dst)+len(src))
	out = append(out, dst...)
	out = append(out, src...)
	slices.Sort(out)
	return slices.Compact(out)
}
