package mergers

import "encoding/json"

// dedupe removes structurally identical entries from a JSON array,
// preserving first occurrence order. Equality keys on the canonical
// re-encoding of each entry (json.Marshal sorts object keys at every
// level), so {"a":1,"b":2} and {"b":2,"a":1} collapse to one entry.
func dedupe(items []json.RawMessage) []json.RawMessage {
	seen := make(map[string]struct{}, len(items))
	out := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		key := canonical(it)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

// canonical returns a stable encoding of a JSON value.
// Unparseable input falls back to the raw bytes.
func canonical(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return string(raw)
	}
	return string(data)
}
