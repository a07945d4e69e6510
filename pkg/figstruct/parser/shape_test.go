package parser

import (
	"reflect"
	"testing"
)

func flat(vals ...float64) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func TestResolveShapeExplicitHint(t *testing.T) {
	tests := []struct {
		name string
		hint any
	}{
		{"numeric array", []any{2.0, 3.0}},
		{"comma string", "2, 3"},
		{"x string", "2x3"},
	}

	expected := [][]any{
		{1.0, 2.0, 3.0},
		{4.0, 5.0, 6.0},
	}
	for _, tt := range tests {
		got := ResolveShape(flat(1, 2, 3, 4, 5, 6), tt.hint, 0, 0)
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("%s: ResolveShape = %v, expected %v", tt.name, got, expected)
		}
	}
}

func TestResolveShapeFromLabels(t *testing.T) {
	// Two x labels, three y labels: 3 rows of 2.
	got := ResolveShape(flat(1, 2, 3, 4, 5, 6), nil, 2, 3)
	expected := [][]any{
		{1.0, 2.0},
		{3.0, 4.0},
		{5.0, 6.0},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ResolveShape = %v, expected %v", got, expected)
	}
}

func TestResolveShapeSquareFallback(t *testing.T) {
	got := ResolveShape(flat(1, 2, 3, 4), nil, 0, 0)
	expected := [][]any{
		{1.0, 2.0},
		{3.0, 4.0},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ResolveShape = %v, expected %v", got, expected)
	}
}

func TestResolveShapeSingleRowFallback(t *testing.T) {
	got := ResolveShape(flat(1, 2, 3), nil, 0, 0)
	expected := [][]any{{1.0, 2.0, 3.0}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ResolveShape = %v, expected %v", got, expected)
	}
}

func TestResolveShapeOrientationCorrection(t *testing.T) {
	// Shape hint says 2x3 but the labels say 3 rows of 2: the transposed
	// arrangement matches the labels, so the resolver must flip.
	got := ResolveShape(flat(1, 2, 3, 4, 5, 6), []any{2.0, 3.0}, 2, 3)
	expected := [][]any{
		{1.0, 4.0},
		{2.0, 5.0},
		{3.0, 6.0},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ResolveShape = %v, expected %v", got, expected)
	}
}

func TestResolveShapeSquareTieKeepsDirect(t *testing.T) {
	// Both orientations match a square label set; the untransposed
	// interpretation wins.
	got := ResolveShape(flat(1, 2, 3, 4), "2, 2", 2, 2)
	expected := [][]any{
		{1.0, 2.0},
		{3.0, 4.0},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ResolveShape = %v, expected %v", got, expected)
	}
}

func TestResolveShapeClipRows(t *testing.T) {
	// Hint rows exceed the y-label count and no transpose applies: clip.
	got := ResolveShape(flat(1, 2, 3, 4, 5, 6), "3, 2", 2, 2)
	expected := [][]any{
		{1.0, 2.0},
		{3.0, 4.0},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ResolveShape = %v, expected %v", got, expected)
	}
}

func TestResolveShapePadColumns(t *testing.T) {
	// Hint columns fall short of the x-label count: nil-pad each row.
	got := ResolveShape(flat(1, 2, 3, 4), "2, 2", 3, 2)
	expected := [][]any{
		{1.0, 2.0, nil},
		{3.0, 4.0, nil},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ResolveShape = %v, expected %v", got, expected)
	}
}

func TestResolveShapeMalformedHintFallsBack(t *testing.T) {
	// An uninterpretable hint is never fatal; label heuristics take over.
	got := ResolveShape(flat(1, 2), "not-a-shape", 2, 1)
	expected := [][]any{{1.0, 2.0}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ResolveShape = %v, expected %v", got, expected)
	}
}

func TestResolveShapeEmpty(t *testing.T) {
	got := ResolveShape(nil, nil, 0, 0)
	if len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("ResolveShape(empty) = %v, expected one empty row", got)
	}
}

func TestParseShapeHint(t *testing.T) {
	tests := []struct {
		name     string
		hint     any
		expected []int
	}{
		{"nil", nil, nil},
		{"ints", []int{4, 5}, []int{4, 5}},
		{"floats", []any{4.0, 5.0}, []int{4, 5}},
		{"comma", "4,5", []int{4, 5}},
		{"spaces", "4 5", []int{4, 5}},
		{"semicolon", "4;5", []int{4, 5}},
		{"garbage", "a,b", nil},
		{"mixed garbage", []any{4.0, "b"}, nil},
	}

	for _, tt := range tests {
		got := parseShapeHint(tt.hint)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("%s: parseShapeHint = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}
