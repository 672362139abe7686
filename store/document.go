package store

import (
	"encoding/json"
	"fmt"
)

// Document is one member of a pushed result set: the stored fields plus the
// document's identity. Snapshots are transient projections; every push fully
// replaces the previous one.
type Document struct {
	ID     string
	Fields Fields
}

// Decode maps the document's fields, plus its id under the "id" key, into a
// typed value via its json tags.
func (d Document) Decode(v any) error {
	merged := make(Fields, len(d.Fields)+1)
	for k, val := range d.Fields {
		merged[k] = val
	}
	merged["id"] = d.ID

	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", d.ID, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", d.ID, err)
	}

	return nil
}

// DecodeAll maps a snapshot into typed values, preserving order.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, len(docs))
	for i, doc := range docs {
		if err := doc.Decode(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
