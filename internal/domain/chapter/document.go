package chapter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/chapterdex/internal/domain"
)

// Marshal encodes the chapter document. Map keys are emitted sorted, so equal
// indexes encode to identical bytes.
func Marshal(idx *Index) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(idx); err != nil {
		return nil, fmt.Errorf("encode chapter %v: %w", idx.Chapter, err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a chapter document. A document without a word map gets an empty one.
func Unmarshal(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("decode chapter: %v: %w", err, domain.ErrMalformedDocument)
	}
	if err := Validate(idx.Chapter); err != nil {
		return nil, fmt.Errorf("decode chapter: %v: %w", err, domain.ErrMalformedDocument)
	}
	if idx.Words == nil {
		idx.Words = WordMap{}
	}
	if idx.Pages == nil {
		idx.Pages = []Page{}
	}
	return &idx, nil
}
