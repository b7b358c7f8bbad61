package mergers

import (
	"encoding/json"
	"fmt"
)

// ListMerger merges files whose payload is a JSON object carrying one
// array field (font "providers", atlas "sources"). Arrays from all packs
// are concatenated in priority order and deduplicated structurally;
// there is no key-based override, so distinct entries from every pack
// survive. Fields outside the array follow normal priority override.
type ListMerger struct {
	// Field is the name of the array field to merge.
	Field string
}

// Merge folds the contributions into one object with a merged array.
func (m *ListMerger) Merge(contribs []Contribution) Result {
	var res Result
	base := make(map[string]json.RawMessage)
	var entries []json.RawMessage
	merged := false

	for _, c := range contribs {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(c.Data, &obj); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("pack %q: malformed JSON object, contribution skipped: %v", c.Pack, err))
			continue
		}
		entries = append(entries, extractArray(obj, m.Field)...)
		for k, v := range obj {
			if k == m.Field {
				continue
			}
			base[k] = v
		}
		merged = true
	}

	if !merged {
		res.Data = []byte("{}")
		return res
	}

	base[m.Field] = mustMarshalRaw(dedupe(entries))
	res.Data = marshalIndent(base)
	return res
}

// extractArray pulls the named array field out of a decoded object.
// A missing or non-array field contributes nothing.
func extractArray(obj map[string]json.RawMessage, field string) []json.RawMessage {
	raw, ok := obj[field]
	if !ok {
		return nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil
	}
	return arr
}

// mustMarshalRaw encodes a slice of raw messages back into one raw array.
func mustMarshalRaw(arr []json.RawMessage) json.RawMessage {
	if arr == nil {
		arr = []json.RawMessage{}
	}
	data, err := json.Marshal(arr)
	if err != nil {
		return json.RawMessage("[]")
	}
	return data
}
