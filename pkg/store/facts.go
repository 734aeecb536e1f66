package store

import (
	"sort"
	"strings"
)

// Known product attribute keys, in canonical serialization order.
// The enumeration is extensible: unknown keys are accepted as a custom
// bucket and appended after the known ones in alphabetical order.
var KnownAttributes = []string{
	"product_type",
	"brand",
	"color",
	"material",
	"gender",
	"size",
	"pattern",
	"theme",
	"fit",
	"sleeve_type",
	"neck_type",
	"graphic_type",
	"price_range",
}

var knownAttributeRank = buildAttributeRank()

func buildAttributeRank() map[string]int {
	rank := make(map[string]int, len(KnownAttributes))
	for i, key := range KnownAttributes {
		rank[key] = i
	}
	return rank
}

// FactSet is the accumulated structured representation of what is known
// about the desired product. Values are free-form strings; relevance is
// validated at the retrieval boundary, not here.
type FactSet map[string]string

// NewFactSet returns an empty fact set for a fresh conversation.
func NewFactSet() FactSet {
	return FactSet{}
}

// Clone returns an independent copy. A nil fact set clones to an empty one.
func (f FactSet) Clone() FactSet {
	out := make(FactSet, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// IsEmpty reports whether no attribute carries a value.
func (f FactSet) IsEmpty() bool {
	for _, v := range f {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Keys returns attribute names in canonical order: the known enumeration
// first, then custom keys alphabetically.
func (f FactSet) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iKnown := knownAttributeRank[keys[i]]
		rj, jKnown := knownAttributeRank[keys[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// SearchText serializes the fact set into the canonical retrieval query
// string: "key: value" pairs joined by ". " in canonical key order.
// Identical content always produces byte-identical output regardless of
// construction order. Empty values are skipped.
func (f FactSet) SearchText() string {
	parts := make([]string, 0, len(f))
	for _, key := range f.Keys() {
		value := strings.TrimSpace(f[key])
		if value == "" {
			continue
		}
		parts = append(parts, key+": "+value)
	}
	return strings.Join(parts, ". ")
}

// Has reports whether the attribute carries a non-empty value.
func (f FactSet) Has(key string) bool {
	return strings.TrimSpace(f[key]) != ""
}
