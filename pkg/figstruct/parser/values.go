package parser

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
)

// fieldValues returns the named trace field as a flat slice of cell values,
// decoding the binary-encoded array form when present. The second result
// reports whether the field carried an array at all; the error is non-nil
// only for a failed binary decode.
func fieldValues(tr models.Trace, key string) ([]any, bool, error) {
	raw, ok := tr[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	switch v := raw.(type) {
	case []any:
		return v, true, nil
	case map[string]any:
		ba, ok := AsBinaryArray(v)
		if !ok {
			return nil, false, nil
		}
		vals, err := DecodeBinaryArray(ba)
		if err != nil {
			return nil, false, err
		}
		return boxFloats(vals), true, nil
	}
	return nil, false, nil
}

// matrixValues returns the named trace field as a 2-D arrangement. Nested
// arrays keep their explicit shape; flat arrays and binary-encoded arrays
// go through the shape resolver. nx and ny are the x/y label counts used
// for orientation correction and padding.
func matrixValues(tr models.Trace, key string, nx, ny int) ([][]any, bool, error) {
	raw, ok := tr[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	switch v := raw.(type) {
	case []any:
		if len(v) > 0 {
			if _, nested := v[0].([]any); nested {
				grid := make([][]any, 0, len(v))
				for _, rowRaw := range v {
					row, _ := rowRaw.([]any)
					grid = append(grid, row)
				}
				return NormalizeGrid(grid, nx, ny), true, nil
			}
		}
		return ResolveShape(v, nil, nx, ny), true, nil
	case map[string]any:
		ba, ok := AsBinaryArray(v)
		if !ok {
			return nil, false, nil
		}
		vals, err := DecodeBinaryArray(ba)
		if err != nil {
			return nil, false, err
		}
		return ResolveShape(boxFloats(vals), ba.Shape, nx, ny), true, nil
	}
	return nil, false, nil
}

// flatValues returns the named field flattened row-major, collapsing one
// level of nesting. Used by the field-scan fallback.
func flatValues(tr models.Trace, key string) ([]any, bool, error) {
	vals, ok, err := fieldValues(tr, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	if len(vals) == 0 {
		return vals, true, nil
	}
	if _, nested := vals[0].([]any); !nested {
		return vals, true, nil
	}
	var flat []any
	for _, rowRaw := range vals {
		if row, ok := rowRaw.([]any); ok {
			flat = append(flat, row...)
		} else {
			flat = append(flat, rowRaw)
		}
	}
	return flat, true, nil
}

// isNested reports whether an array field holds arrays as elements.
func isNested(vals []any) bool {
	if len(vals) == 0 {
		return false
	}
	_, ok := vals[0].([]any)
	return ok
}

// indexValues produces positional index labels 0..n-1 for traces that omit
// their axis label arrays.
func indexValues(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// cellString renders a cell value as a column name.
func cellString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case time.Time:
		return s.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(s)
	}
}
