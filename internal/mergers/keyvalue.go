package mergers

import (
	"encoding/json"
	"fmt"
)

// KeyValueMerger merges flat JSON objects key by key. Later (higher-priority)
// packs override earlier values for the same key. Values are replaced whole,
// never deep-merged. Used for language files and sounds.json.
type KeyValueMerger struct{}

// Merge folds the contributions into a single JSON object.
func (m *KeyValueMerger) Merge(contribs []Contribution) Result {
	var res Result
	out := make(map[string]json.RawMessage)
	merged := false

	for _, c := range contribs {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(c.Data, &obj); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("pack %q: malformed JSON object, contribution skipped: %v", c.Pack, err))
			continue
		}
		for k, v := range obj {
			out[k] = v
		}
		merged = true
	}

	if !merged {
		// Every contribution was malformed; emit an empty object rather
		// than carrying broken content into the output pack.
		res.Data = []byte("{}")
		return res
	}

	res.Data = marshalIndent(out)
	return res
}

// marshalIndent encodes a value the way the output pack stores JSON:
// two-space indent with a trailing newline. Encoding a value that came
// from json.Unmarshal cannot fail.
func marshalIndent(v any) []byte {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return []byte("{}")
	}
	return append(data, '\n')
}
