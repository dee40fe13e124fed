package jsonshape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenKeysNestedObjects(t *testing.T) {
	value := map[string]any{
		"a": map[string]any{"b": 1, "c": 2},
	}
	assert.Equal(t, []string{"a.b", "a.c"}, FlattenKeys(value))
}

func TestFlattenKeysArraysAreLeaves(t *testing.T) {
	value := map[string]any{
		"items": []any{map[string]any{"x": 1}},
		"name":  "demo",
	}
	assert.Equal(t, []string{"items", "name"}, FlattenKeys(value))
}

func TestFlattenKeysNonObject(t *testing.T) {
	assert.Empty(t, FlattenKeys("scalar"))
	assert.Empty(t, FlattenKeys(nil))
}

func TestLookupDescendsDotPaths(t *testing.T) {
	value := map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 42.0}},
	}
	got, ok := Lookup(value, "a.b.c")
	require.True(t, ok)
	assert.Equal(t, 42.0, got)
}

func TestLookupUnwrapsDataEnvelope(t *testing.T) {
	value := map[string]any{
		"data": map[string]any{"price": 10.5},
	}
	got, ok := Lookup(value, "price")
	require.True(t, ok)
	assert.Equal(t, 10.5, got)
}

func TestLookupMissingSegment(t *testing.T) {
	value := map[string]any{"a": map[string]any{"b": 1}}
	_, ok := Lookup(value, "a.missing")
	assert.False(t, ok)
	_, ok = Lookup(value, "a.b.c")
	assert.False(t, ok)
}

func TestPrimaryArraySelf(t *testing.T) {
	arr := []any{1, 2}
	got, ok := PrimaryArray(arr)
	require.True(t, ok)
	assert.Equal(t, arr, got)
}

func TestPrimaryArrayEnvelopePriority(t *testing.T) {
	value := map[string]any{
		"results": []any{"second"},
		"data":    []any{"first"},
	}
	got, ok := PrimaryArray(value)
	require.True(t, ok)
	assert.Equal(t, []any{"first"}, got)
}

func TestPrimaryArrayFallsBackToAnyArrayValue(t *testing.T) {
	value := map[string]any{
		"zz":     "noise",
		"quotes": []any{map[string]any{"s": "AAPL"}},
	}
	got, ok := PrimaryArray(value)
	require.True(t, ok)
	assert.Len(t, got, 1)
}

func TestPrimaryArrayNone(t *testing.T) {
	_, ok := PrimaryArray(map[string]any{"a": 1})
	assert.False(t, ok)
	_, ok = PrimaryArray("scalar")
	assert.False(t, ok)
}

func TestMoveForward(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	assert.Equal(t, []string{"b", "c", "a", "d"}, Move(in, 0, 2))
	assert.Equal(t, []string{"a", "b", "c", "d"}, in, "input must not be mutated")
}

func TestMoveBackward(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	assert.Equal(t, []string{"d", "a", "b", "c"}, Move(in, 3, 0))
}

func TestMoveSameIndex(t *testing.T) {
	in := []string{"a", "b", "c"}
	assert.Equal(t, in, Move(in, 1, 1))
}

func TestMoveClampsOutOfRange(t *testing.T) {
	in := []string{"a", "b", "c"}
	assert.Equal(t, []string{"b", "c", "a"}, Move(in, -5, 99))
	assert.Equal(t, []string{"c", "a", "b"}, Move(in, 99, 0))
}

func TestMoveEmpty(t *testing.T) {
	assert.Empty(t, Move([]int{}, 0, 1))
}
