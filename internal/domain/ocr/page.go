// Package ocr models the per-page payload returned by the text recognition service.
package ocr

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/chapterdex/internal/domain"
)

// Word is one recognized word with its polygon.
type Word struct {
	Text        string `json:"text"`
	BoundingBox []int  `json:"boundingBox"`
}

// Line is one recognized line: raw text, polygon (8 numbers, clockwise from
// top-left) and its words in reading order.
type Line struct {
	Text        string `json:"text"`
	BoundingBox []int  `json:"boundingBox"`
	Words       []Word `json:"words"`
}

// Page is one recognized page. Any page number embedded by the service is ignored;
// the chapter builder numbers pages by input position.
type Page struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Lines  []Line `json:"lines"`
}

// Source is one raw page payload together with a name used in reports.
// Err is set when the payload could not be fetched at all.
type Source struct {
	Name string
	Data []byte
	Err  error
}

// ParsePage decodes a raw page payload. The recognition service wraps each result in
// a one-element array; both the wrapped and the bare object form are accepted.
func ParsePage(data []byte) (Page, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Page{}, fmt.Errorf("empty payload: %w", domain.ErrMalformedPage)
	}

	if trimmed[0] == '[' {
		var pages []Page
		if err := json.Unmarshal(trimmed, &pages); err != nil {
			return Page{}, fmt.Errorf("decode page array: %v: %w", err, domain.ErrMalformedPage)
		}
		if len(pages) == 0 {
			return Page{}, fmt.Errorf("empty page array: %w", domain.ErrMalformedPage)
		}
		return pages[0], nil
	}

	var page Page
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return Page{}, fmt.Errorf("decode page: %v: %w", err, domain.ErrMalformedPage)
	}
	return page, nil
}
