package parser

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
)

// DefaultMergeKey is the key column name used when the caller supplies
// none.
const DefaultMergeKey = "x"

// IsMergeable reports whether a table has the cartesian two-column shape
// (key column plus one value column) required for a key-based merge.
func IsMergeable(t models.Table, keyName string) bool {
	return len(t.Columns) == 2 && t.ColumnIndex(keyName) >= 0
}

// MergeCartesianTables unifies several cartesian key/value tables into one
// wide table. Keys are collected in first-seen order across tables; each
// source contributes one output column named after its value column, with
// nil filling the rows whose key the source lacks. Time-valued keys are
// identified by their ISO-8601 rendering so equal instants collapse to one
// row regardless of representation.
func MergeCartesianTables(tables []models.Table, keyName string) models.Table {
	if keyName == "" {
		keyName = DefaultMergeKey
	}

	var keys []any
	index := make(map[string]int)
	for _, t := range tables {
		ki := t.ColumnIndex(keyName)
		if ki < 0 {
			continue
		}
		for _, v := range t.Columns[ki].Values {
			k := keyString(v)
			if _, seen := index[k]; !seen {
				index[k] = len(keys)
				keys = append(keys, v)
			}
		}
	}

	columns := []models.Column{{Name: keyName, Values: keys}}
	for _, t := range tables {
		ki := t.ColumnIndex(keyName)
		if ki < 0 {
			continue
		}
		keyVals := t.Columns[ki].Values
		for ci, c := range t.Columns {
			if ci == ki {
				continue
			}
			out := make([]any, len(keys))
			for ri, kv := range keyVals {
				if ri >= len(c.Values) {
					break
				}
				pos := index[keyString(kv)]
				if out[pos] == nil {
					out[pos] = c.Values[ri]
				}
			}
			columns = append(columns, models.Column{Name: c.Name, Values: out})
		}
	}

	return models.NewTable("", columns, map[string]any{"merged": true})
}

// keyString renders a cell value as a de-duplication key. time.Time keys
// use the ISO-8601 string so equality is by instant, not by reference.
func keyString(v any) string {
	switch k := v.(type) {
	case nil:
		return "\x00"
	case string:
		return k
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64)
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case bool:
		return strconv.FormatBool(k)
	case time.Time:
		return k.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", k)
	}
}
