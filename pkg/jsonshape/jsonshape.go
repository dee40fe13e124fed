// Package jsonshape provides best-effort helpers for working with
// arbitrary decoded JSON: dot-path discovery and lookup, locating the
// primary record array inside unknown payload envelopes, and slice
// reordering for drag-style moves.
//
// Third-party financial APIs disagree on payload shape (top-level
// arrays, {data: [...]} envelopes, map-of-rates objects), so every
// helper fails soft: a shape mismatch yields a zero value, never an
// error.
package jsonshape

import (
	"sort"
	"strings"
)

// FlattenKeys returns every dot-notation path reachable from value by
// descending into nested objects. Arrays are leaves: their path is
// emitted but their contents are not walked, since field selection
// operates on scalar and object leaves. A nil or non-object root yields
// no paths. Keys are emitted sorted at each level; decoded JSON maps
// carry no document order to preserve.
func FlattenKeys(value any) []string {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return flatten(obj, "")
}

func flatten(obj map[string]any, prefix string) []string {
	var out []string
	for _, key := range sortedKeys(obj) {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if child, ok := obj[key].(map[string]any); ok {
			out = append(out, flatten(child, path)...)
			continue
		}
		out = append(out, path)
	}
	return out
}

// Lookup walks a dot-path into value and reports whether every segment
// resolved. When the root object carries a non-nil "data" key the walk
// starts there instead: several providers box the real payload under a
// data envelope. That unwrap is a fixed heuristic, not a general rule;
// a top-level field literally named "data" cannot be selected directly.
// Missing segments and descents into non-objects resolve to (nil, false).
func Lookup(value any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	if obj, ok := value.(map[string]any); ok {
		if data, ok := obj["data"]; ok && data != nil {
			value = data
		}
	}
	for _, segment := range strings.Split(path, ".") {
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, false
		}
		value, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return value, true
}

// envelopeKeys are checked in priority order before falling back to the
// first array-valued key.
var envelopeKeys = []string{"data", "entries", "results", "items", "list"}

// PrimaryArray locates the list of records inside an unknown payload:
// the value itself, a well-known envelope key, or the first array-valued
// key in sorted key order. Returns false when the payload holds no
// array; callers then treat the whole object as a single record or
// handle special shapes (such as currency-to-rate maps) themselves.
func PrimaryArray(value any) ([]any, bool) {
	if arr, ok := value.([]any); ok {
		return arr, true
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range envelopeKeys {
		if arr, ok := obj[key].([]any); ok {
			return arr, true
		}
	}
	for _, key := range sortedKeys(obj) {
		if arr, ok := obj[key].([]any); ok {
			return arr, true
		}
	}
	return nil, false
}

// Move returns a copy of s with the element at from removed and
// reinserted at to, using post-removal indexing (remove first, then
// insert into the shortened slice). Out-of-range indices are clamped.
// The input slice is never mutated; from == to yields an equal copy.
func Move[T any](s []T, from, to int) []T {
	out := make([]T, 0, len(s))
	if len(s) == 0 {
		return out
	}
	from = clamp(from, 0, len(s)-1)
	moved := s[from]
	out = append(out, s[:from]...)
	out = append(out, s[from+1:]...)
	to = clamp(to, 0, len(out))
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
