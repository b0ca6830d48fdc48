// Package chapter holds the per-chapter index document: every page with its
// formatted lines, plus the chapter word map (normalized word -> pages).
package chapter

import (
	"slices"

	"github.com/kailas-cloud/chapterdex/internal/domain/geometry"
)

// Line is a recognized line reduced to its text and corner points.
type Line struct {
	Text        string           `json:"text"`
	BoundingBox []geometry.Point `json:"boundingBox"`
}

// Page is one page of a chapter. Page numbers are 1-based input positions.
type Page struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Page   int    `json:"page"`
	Lines  []Line `json:"words"`
}

// WordMap maps a normalized word to the ascending, duplicate-free pages it occurs on.
type WordMap map[string][]int

// Insert records word on page. It reports whether the map changed; empty words
// and pages already present are ignored.
func (m WordMap) Insert(word string, page int) bool {
	if word == "" {
		return false
	}
	pages := m[word]
	i, found := slices.BinarySearch(pages, page)
	if found {
		return false
	}
	m[word] = slices.Insert(pages, i, page)
	return true
}

// Pages returns the pages word occurs on.
func (m WordMap) Pages(word string) []int {
	return m[word]
}

// Index is one chapter's persisted document.
type Index struct {
	Chapter float64 `json:"chapter"`
	Pages   []Page  `json:"pages"`
	Words   WordMap `json:"mentionedWordChapterLocation"`
}

// New returns an empty index for chapter num.
func New(num float64) *Index {
	return &Index{Chapter: num, Pages: []Page{}, Words: WordMap{}}
}

// Key returns the chapter's master index key.
func (idx *Index) Key() string {
	return Key(idx.Chapter)
}

// ResetWords discards the derived word map.
func (idx *Index) ResetWords() {
	idx.Words = WordMap{}
}
