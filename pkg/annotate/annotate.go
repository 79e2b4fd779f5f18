// Package annotate normalizes the highlight formats emitted by the execution
// backend into one canonical annotation model.
//
// The backend grew three highlight representations over time:
//
//   - a flat list of identifiers: [0, 3]
//   - parallel identifier/color/label lists:
//     {"indices": [2], "colors": ["#f39c12"], "labels": ["MID"]}
//     (tree frames use "node_ids" instead of "indices")
//   - per-node boolean flags: {"id": 1, "highlighted": true}
//
// All three collapse to an [Annotation]: at most one entry per identifier,
// each carrying a display color and an optional label. Shape inference by
// structural inspection happens only here; everything downstream consumes the
// canonical form.
package annotate

import (
	"bytes"
	"encoding/json"
)

// DefaultColor is assigned to identifiers highlighted without an explicit
// color (flat lists, boolean flags, or parallel lists shorter than the
// identifier list).
const DefaultColor = "#f1c40f"

// Entry is the canonical display state for one highlighted identifier.
type Entry struct {
	Color string `json:"color"`
	Label string `json:"label,omitempty"`
}

// Annotation maps a structure-local identifier (array index or node id) to
// its display entry. Identifiers that refer to elements absent from the
// structure are retained; they simply produce no visual effect at render
// time.
type Annotation map[int]Entry

// IDs returns the annotated identifiers in unspecified order.
func (a Annotation) IDs() []int {
	ids := make([]int, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	return ids
}

// structured is the parallel-list highlight shape. Arrays, stacks, and queues
// use "indices"; tree frames use "node_ids". Both never appear together.
type structured struct {
	Indices []int    `json:"indices"`
	NodeIDs []int    `json:"node_ids"`
	Colors  []string `json:"colors"`
	Labels  []string `json:"labels"`
}

// Normalize converts raw highlight JSON into a canonical Annotation.
//
// Absent, empty, or unrecognized input yields an empty annotation — shape
// mismatches degrade to "no highlights", they never fail. A JSON array is
// treated as a flat identifier list; a JSON object as the parallel-list
// shape.
func Normalize(raw json.RawMessage) Annotation {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Annotation{}
	}

	switch trimmed[0] {
	case '[':
		var ids []int
		if err := json.Unmarshal(trimmed, &ids); err != nil {
			return Annotation{}
		}
		return FromIDs(ids)
	case '{':
		var s structured
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Annotation{}
		}
		ids := s.Indices
		if len(ids) == 0 {
			ids = s.NodeIDs
		}
		return FromParallel(ids, s.Colors, s.Labels)
	default:
		return Annotation{}
	}
}

// FromIDs builds an annotation where every identifier receives the default
// color and no label.
func FromIDs(ids []int) Annotation {
	a := make(Annotation, len(ids))
	for _, id := range ids {
		a[id] = Entry{Color: DefaultColor}
	}
	return a
}

// FromParallel zips identifiers with colors and labels positionally. When the
// color or label list is shorter than the identifier list, unmatched
// identifiers fall back to the default color and no label. Duplicate
// identifiers keep the last entry.
func FromParallel(ids []int, colors, labels []string) Annotation {
	a := make(Annotation, len(ids))
	for i, id := range ids {
		e := Entry{Color: DefaultColor}
		if i < len(colors) && colors[i] != "" {
			e.Color = colors[i]
		}
		if i < len(labels) {
			e.Label = labels[i]
		}
		a[id] = e
	}
	return a
}

// Merge layers override on top of base: same-identifier entries from override
// replace those from base, non-conflicting entries from both are kept.
// Neither input is mutated.
func Merge(base, override Annotation) Annotation {
	if len(base) == 0 {
		return override
	}
	merged := make(Annotation, len(base)+len(override))
	for id, e := range base {
		merged[id] = e
	}
	for id, e := range override {
		merged[id] = e
	}
	return merged
}
