package master

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/chapterdex/internal/domain"
)

// Marshal encodes the master document. encoding/json sorts map keys, so both
// mapping levels come out key-ordered.
func Marshal(m *Index) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode master: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a master document. Any decode failure is ErrMasterUnreadable.
func Unmarshal(data []byte) (*Index, error) {
	var m Index
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode master: %v: %w", err, domain.ErrMasterUnreadable)
	}
	if m.Words == nil {
		m.Words = map[string]Locations{}
	}
	return &m, nil
}
