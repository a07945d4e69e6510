package figstruct

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/parser"
)

func figureFromJSON(t *testing.T, raw string) *models.Figure {
	t.Helper()
	var fig models.Figure
	require.NoError(t, json.Unmarshal([]byte(raw), &fig))
	return &fig
}

func TestExtractTablesDispatchCompleteness(t *testing.T) {
	fig := figureFromJSON(t, `{
		"data": [
			{"type": "scatter", "name": "s", "x": [1], "y": [2]},
			{"type": "pie", "labels": ["a"], "values": [1]},
			{"type": "heatmap", "x": ["c"], "y": ["r"], "z": [[1]]},
			{"type": "waterfall", "x": ["w"], "y": [3]},
			{"type": "box", "name": "b", "y": [1, 2]}
		]
	}`)

	tables := ExtractTables(fig, DefaultOptions())
	require.Len(t, tables, 5)

	// Trace order is preserved absent a merge.
	assert.Equal(t, "scatter", tables[0].Meta["traceType"])
	assert.Equal(t, "pie", tables[1].Meta["traceType"])
	assert.Equal(t, "heatmap", tables[2].Meta["traceType"])
	assert.Equal(t, "waterfall", tables[3].Meta["traceType"])
	assert.Equal(t, "box", tables[4].Meta["traceType"])
}

func TestExtractTablesColumnPadding(t *testing.T) {
	fig := figureFromJSON(t, `{
		"data": [
			{"type": "pie", "labels": ["a", "b", "c"], "values": [1]},
			{"type": "scatter", "name": "s", "x": [1, 2, 3, 4], "y": [9]}
		]
	}`)

	for _, tbl := range ExtractTables(fig, DefaultOptions()) {
		n := tbl.Len()
		for _, c := range tbl.Columns {
			assert.Len(t, c.Values, n, "column %q in %v table", c.Name, tbl.Meta["traceType"])
		}
	}
}

func TestExtractTablesSiblingIsolation(t *testing.T) {
	badPayload := base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	fig := &models.Figure{Data: []models.Trace{
		{"type": "scatter", "name": "good", "x": []any{1.0}, "y": []any{2.0}},
		{"type": "scatter", "name": "bad", "x": []any{1.0},
			"y": map[string]any{"dtype": "i8", "bdata": badPayload}},
		{"type": "pie", "labels": []any{"a"}, "values": []any{1.0}},
	}}

	var traceErrs []error
	opts := DefaultOptions()
	opts.OnTraceError = func(err error) { traceErrs = append(traceErrs, err) }

	tables := ExtractTables(fig, opts)
	require.Len(t, tables, 2, "the malformed trace degrades, siblings survive")

	require.Len(t, traceErrs, 1)
	var traceErr *TraceError
	require.ErrorAs(t, traceErrs[0], &traceErr)
	assert.Equal(t, 1, traceErr.Index)
	var dtypeErr *parser.UnsupportedDtypeError
	assert.ErrorAs(t, traceErr, &dtypeErr)
}

func TestExtractTablesStructuralOddities(t *testing.T) {
	assert.Empty(t, ExtractTables(nil, DefaultOptions()))
	assert.Empty(t, ExtractTables(&models.Figure{}, DefaultOptions()))
	assert.Empty(t, ExtractTables(&models.Figure{Data: []models.Trace{}}, DefaultOptions()))
}

func TestExtractTablesMerge(t *testing.T) {
	fig := figureFromJSON(t, `{
		"data": [
			{"type": "scatter", "name": "a", "x": [1, 2, 3], "y": [10, 20, 30]},
			{"type": "scatter", "name": "b", "x": [2, 3, 4], "y": [200, 300, 400]},
			{"type": "pie", "labels": ["p"], "values": [1]}
		]
	}`)

	opts := DefaultOptions()
	opts.MergeCartesian = true
	tables := ExtractTables(fig, opts)
	require.Len(t, tables, 2)

	merged := tables[0]
	assert.Equal(t, true, merged.Meta["merged"])
	require.Equal(t, []string{"x", "a", "b"}, columnNames(merged))
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0}, merged.Columns[0].Values)
	assert.Equal(t, []any{10.0, 20.0, 30.0, nil}, merged.Columns[1].Values)
	assert.Equal(t, []any{nil, 200.0, 300.0, 400.0}, merged.Columns[2].Values)

	// The non-cartesian table passes through unmerged, after the merged one.
	assert.Equal(t, "pie", tables[1].Meta["traceType"])
}

func TestExtractTablesMergeSingleCartesianUnchanged(t *testing.T) {
	fig := figureFromJSON(t, `{
		"data": [{"type": "scatter", "name": "a", "x": [1], "y": [10]}]
	}`)
	opts := DefaultOptions()
	opts.MergeCartesian = true
	tables := ExtractTables(fig, opts)
	require.Len(t, tables, 1)
	assert.Nil(t, tables[0].Meta["merged"])
}

func TestExtractTablesCoerceDates(t *testing.T) {
	fig := figureFromJSON(t, `{
		"data": [{"type": "scatter", "name": "s", "x": [1600000000, "2025-06-01"], "y": [1, 2]}]
	}`)
	opts := DefaultOptions()
	opts.CoerceDates = true
	tables := ExtractTables(fig, opts)
	require.Len(t, tables, 1)

	x := tables[0].Columns[0]
	_, first := x.Values[0].(time.Time)
	_, second := x.Values[1].(time.Time)
	assert.True(t, first, "epoch milliseconds coerced")
	assert.True(t, second, "date string coerced")
}

func TestExtractTablesCoerceDatesUsesResolvedXName(t *testing.T) {
	fig := figureFromJSON(t, `{
		"data": [{"type": "scatter", "name": "s", "x": [1600000000], "y": [1]}],
		"layout": {"xaxis": {"title": {"text": "when"}}}
	}`)
	opts := DefaultOptions()
	opts.CoerceDates = true
	tables := ExtractTables(fig, opts)
	require.Len(t, tables, 1)

	require.Equal(t, "when", tables[0].Columns[0].Name)
	_, coerced := tables[0].Columns[0].Values[0].(time.Time)
	assert.True(t, coerced)
}

func TestFigureToRows(t *testing.T) {
	fig := figureFromJSON(t, `{
		"data": [{"type": "scatter", "name": "s", "x": [1, 2], "y": [10, 20]}]
	}`)
	grids := FigureToRows(fig, DefaultOptions())
	require.Len(t, grids, 1)
	require.Equal(t, [][]any{
		{"x", "s"},
		{1.0, 10.0},
		{2.0, 20.0},
	}, grids[0])
}

func TestDecodeBinaryArrayEntryPoint(t *testing.T) {
	_, err := DecodeBinaryArray(map[string]any{"shape": "2,2"})
	assert.True(t, errors.Is(err, ErrNotBinaryArray))
}

func TestTraceErrorMessage(t *testing.T) {
	err := &TraceError{Index: 3, Err: errors.New("boom")}
	assert.Equal(t, "trace 3 (untyped): boom", err.Error())
}

func columnNames(t models.Table) []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
