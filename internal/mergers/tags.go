package mergers

import (
	"encoding/json"
	"fmt"
)

// TagMerger merges data tag files ({"values": [...], "replace": bool}).
// Values concatenate across packs in priority order with structural
// dedup, first occurrence winning. A pack that sets replace:true acts as
// a reset point: everything accumulated from lower priorities is
// discarded before that pack's values are folded in, while values from
// higher priorities still apply on top.
type TagMerger struct{}

// Merge folds the contributions into one tag object.
func (m *TagMerger) Merge(contribs []Contribution) Result {
	var res Result
	base := make(map[string]json.RawMessage)
	var values []json.RawMessage
	merged := false

	for _, c := range contribs {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(c.Data, &obj); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("pack %q: malformed JSON object, contribution skipped: %v", c.Pack, err))
			continue
		}
		if replaceFlag(obj) {
			values = values[:0]
		}
		values = append(values, extractArray(obj, "values")...)
		for k, v := range obj {
			if k == "values" {
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

	base["values"] = mustMarshalRaw(dedupe(values))
	res.Data = marshalIndent(base)
	return res
}

// replaceFlag reports whether the decoded tag object sets replace:true.
func replaceFlag(obj map[string]json.RawMessage) bool {
	raw, ok := obj["replace"]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}
