package parser

import (
	"time"

	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
)

// Epoch-millisecond heuristic bounds: a number inside this exclusive range
// looks like a millisecond timestamp rather than a small-magnitude count.
const (
	epochMsMin = 10_000_000
	epochMsMax = 17_000_000_000
)

// dateLayouts are tried in order when coercing string cells.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// CoerceDateColumn reinterprets the named column's values as calendar
// timestamps in place. Existing timestamps pass through unchanged, numbers
// inside the epoch-millisecond range convert, parseable strings convert,
// and everything else is left as-is. The pass never fails and applying it
// twice equals applying it once.
func CoerceDateColumn(t *models.Table, name string) {
	ci := t.ColumnIndex(name)
	if ci < 0 {
		return
	}
	vals := t.Columns[ci].Values
	for i, v := range vals {
		vals[i] = coerceDate(v)
	}
}

// coerceDate converts one cell when it confidently looks like a timestamp.
func coerceDate(v any) any {
	switch c := v.(type) {
	case time.Time:
		return c
	case float64:
		if c > epochMsMin && c < epochMsMax {
			return time.UnixMilli(int64(c)).UTC()
		}
	case int:
		if c > epochMsMin && c < epochMsMax {
			return time.UnixMilli(int64(c)).UTC()
		}
	case int64:
		if c > epochMsMin && c < epochMsMax {
			return time.UnixMilli(c).UTC()
		}
	case string:
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, c); err == nil {
				return ts
			}
		}
	}
	return v
}
