package parser

import (
	"fmt"

	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
)

// Kind identifies the extraction strategy for a trace type.
type Kind int

const (
	// KindCartesian covers parallel x/y coordinate traces.
	KindCartesian Kind = iota
	// KindTable covers explicit header/cells table traces.
	KindTable
	// KindMatrix covers 2-D grid traces (heatmap, image, contour).
	KindMatrix
	// KindCategorical covers label/value traces (pie, sunburst, ...).
	KindCategorical
	// KindOHLC covers financial interval traces.
	KindOHLC
	// KindWaterfall covers waterfall traces.
	KindWaterfall
	// KindChoropleth covers location/value map traces.
	KindChoropleth
	// KindDistribution covers box and violin traces.
	KindDistribution
	// KindFallback covers unrecognized types, extracted by field scan.
	KindFallback
)

// traceKindMap maps lower-cased trace types to extraction kinds.
var traceKindMap = map[string]Kind{
	"scatter":     KindCartesian,
	"scattergl":   KindCartesian,
	"bar":         KindCartesian,
	"histogram":   KindCartesian,
	"area":        KindCartesian,
	"line":        KindCartesian,
	"table":       KindTable,
	"heatmap":     KindMatrix,
	"image":       KindMatrix,
	"contour":     KindMatrix,
	"pie":         KindCategorical,
	"sunburst":    KindCategorical,
	"treemap":     KindCategorical,
	"funnelarea":  KindCategorical,
	"ohlc":        KindOHLC,
	"candlestick": KindOHLC,
	"waterfall":   KindWaterfall,
	"choropleth":  KindChoropleth,
	"box":         KindDistribution,
	"violin":      KindDistribution,
}

// fallbackFields is the field scan order for unrecognized trace types.
var fallbackFields = []string{"x", "y", "z", "labels", "values", "locations", "open", "high", "low", "close"}

// KindOf returns the extraction kind for a trace. An absent type defaults
// to the generic cartesian assumption.
func KindOf(tr models.Trace) Kind {
	typ := tr.Type()
	if typ == "" {
		return KindCartesian
	}
	if k, ok := traceKindMap[typ]; ok {
		return k
	}
	return KindFallback
}

// ExtractParams configures per-trace extraction.
type ExtractParams struct {
	// XColumnName overrides the x column name for cartesian traces.
	// Empty defers to the figure's x-axis title, then the literal "x".
	XColumnName string
	// UnnamedYPrefix prefixes generated names for value columns of traces
	// that carry no name when the figure has no y-axis title either.
	UnnamedYPrefix string
}

// DefaultExtractParams returns default extraction parameters.
func DefaultExtractParams() ExtractParams {
	return ExtractParams{UnnamedYPrefix: "y"}
}

// Extractor converts a figure's traces into tables one at a time. It keeps
// the running ordinal used to name value columns of untitled traces.
type Extractor struct {
	fig      *models.Figure
	params   ExtractParams
	untitled int
}

// NewExtractor creates an extractor for one figure.
func NewExtractor(fig *models.Figure, params ExtractParams) *Extractor {
	if params.UnnamedYPrefix == "" {
		params.UnnamedYPrefix = "y"
	}
	return &Extractor{fig: fig, params: params}
}

// ExtractTrace converts one trace into a table. A nil table with a nil
// error means the trace carries nothing to tabulate and is dropped. An
// error is local to this trace and must not abort sibling extractions.
func (e *Extractor) ExtractTrace(tr models.Trace) (*models.Table, error) {
	switch KindOf(tr) {
	case KindTable:
		return e.extractTable(tr)
	case KindMatrix:
		return e.extractMatrix(tr)
	case KindCategorical:
		return e.extractCategorical(tr)
	case KindOHLC:
		return e.extractOHLC(tr)
	case KindWaterfall:
		return e.extractWaterfall(tr)
	case KindChoropleth:
		return e.extractChoropleth(tr)
	case KindDistribution:
		return e.extractDistribution(tr)
	case KindCartesian:
		return e.extractCartesian(tr)
	default:
		return e.extractFallback(tr)
	}
}

// xColumnName resolves the cartesian x column name: explicit override,
// then the figure's x-axis title, then the literal "x".
func (e *Extractor) xColumnName() string {
	if e.params.XColumnName != "" {
		return e.params.XColumnName
	}
	if t := e.fig.XAxisTitle(); t != "" {
		return t
	}
	return "x"
}

// valueColumnName resolves the cartesian value column name: the trace's
// own name, then the figure's y-axis title, then a generated fallback with
// an ordinal incrementing per untitled trace in figure order.
func (e *Extractor) valueColumnName(tr models.Trace) string {
	if n := tr.Name(); n != "" {
		return n
	}
	if t := e.fig.YAxisTitle(); t != "" {
		return t
	}
	e.untitled++
	return fmt.Sprintf("%s_%d", e.params.UnnamedYPrefix, e.untitled)
}

// newMeta seeds table metadata with the trace type.
func newMeta(tr models.Trace) map[string]any {
	meta := map[string]any{}
	if typ := tr.Type(); typ != "" {
		meta["traceType"] = typ
	}
	return meta
}

// extractTable handles explicit table traces: one column per header/cell
// array pair, with missing headers defaulting to col_N.
func (e *Extractor) extractTable(tr models.Trace) (*models.Table, error) {
	header := nestedArray(tr, "header", "values")
	cells := nestedArray(tr, "cells", "values")
	if len(cells) == 0 {
		return nil, nil
	}

	columns := make([]models.Column, 0, len(cells))
	for i, colRaw := range cells {
		vals, _ := colRaw.([]any)
		name := fmt.Sprintf("col_%d", i+1)
		if i < len(header) {
			if h := headerName(header[i]); h != "" {
				name = h
			}
		}
		columns = append(columns, models.Column{Name: name, Values: vals})
	}
	tbl := models.NewTable(tr.Name(), columns, newMeta(tr))
	return &tbl, nil
}

// nestedArray reads trace[outer][inner] as an array.
func nestedArray(tr models.Trace, outer, inner string) []any {
	m, ok := tr[outer].(map[string]any)
	if !ok {
		return nil
	}
	vals, _ := m[inner].([]any)
	return vals
}

// headerName renders a header cell, unwrapping the nested multi-row header
// form by taking its first element.
func headerName(v any) string {
	if row, ok := v.([]any); ok {
		if len(row) == 0 {
			return ""
		}
		return cellString(row[0])
	}
	return cellString(v)
}

// extractMatrix handles heatmap-like traces: one y-axis column followed by
// one column per x label, with missing labels defaulting to positional
// indices.
func (e *Extractor) extractMatrix(tr models.Trace) (*models.Table, error) {
	xs, _, err := fieldValues(tr, "x")
	if err != nil {
		return nil, err
	}
	ys, _, err := fieldValues(tr, "y")
	if err != nil {
		return nil, err
	}
	grid, ok, err := matrixValues(tr, "z", len(xs), len(ys))
	if err != nil {
		return nil, err
	}
	if !ok {
		return e.extractFallback(tr)
	}

	rows := len(grid)
	cols := 0
	for _, r := range grid {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if len(ys) == 0 {
		ys = indexValues(rows)
	}
	if len(xs) == 0 {
		xs = indexValues(cols)
	}

	yName := e.fig.YAxisTitle()
	if yName == "" {
		yName = "y"
	}
	columns := make([]models.Column, 0, len(xs)+1)
	columns = append(columns, models.Column{Name: yName, Values: ys})
	for j, x := range xs {
		vals := make([]any, 0, rows)
		for _, row := range grid {
			if j < len(row) {
				vals = append(vals, row[j])
			} else {
				vals = append(vals, nil)
			}
		}
		columns = append(columns, models.Column{Name: cellString(x), Values: vals})
	}
	tbl := models.NewTable(tr.Name(), columns, newMeta(tr))
	return &tbl, nil
}

// extractCategorical handles pie-like traces: label and value columns plus
// a parent column when the source carries hierarchy data.
func (e *Extractor) extractCategorical(tr models.Trace) (*models.Table, error) {
	labels, hasLabels, err := fieldValues(tr, "labels")
	if err != nil {
		return nil, err
	}
	values, hasValues, err := fieldValues(tr, "values")
	if err != nil {
		return nil, err
	}
	if !hasLabels && !hasValues {
		return nil, nil
	}

	columns := []models.Column{
		{Name: "label", Values: labels},
		{Name: "value", Values: values},
	}
	if parents, ok, err := fieldValues(tr, "parents"); err != nil {
		return nil, err
	} else if ok && len(parents) > 0 {
		columns = append(columns, models.Column{Name: "parent", Values: parents})
	}
	tbl := models.NewTable(tr.Name(), columns, newMeta(tr))
	return &tbl, nil
}

// extractOHLC handles financial interval traces by direct field mapping.
func (e *Extractor) extractOHLC(tr models.Trace) (*models.Table, error) {
	var columns []models.Column
	for _, key := range []string{"x", "open", "high", "low", "close"} {
		vals, ok, err := fieldValues(tr, key)
		if err != nil {
			return nil, err
		}
		if ok {
			columns = append(columns, models.Column{Name: key, Values: vals})
		}
	}
	if len(columns) == 0 {
		return nil, nil
	}
	tbl := models.NewTable(tr.Name(), columns, newMeta(tr))
	return &tbl, nil
}

// extractWaterfall handles waterfall traces: x, y, and the optional
// measure column.
func (e *Extractor) extractWaterfall(tr models.Trace) (*models.Table, error) {
	xs, hasX, err := fieldValues(tr, "x")
	if err != nil {
		return nil, err
	}
	ys, hasY, err := fieldValues(tr, "y")
	if err != nil {
		return nil, err
	}
	if !hasX && !hasY {
		return nil, nil
	}

	columns := []models.Column{
		{Name: "x", Values: xs},
		{Name: "y", Values: ys},
	}
	if measure, ok, err := fieldValues(tr, "measure"); err != nil {
		return nil, err
	} else if ok && len(measure) > 0 {
		columns = append(columns, models.Column{Name: "measure", Values: measure})
	}
	tbl := models.NewTable(tr.Name(), columns, newMeta(tr))
	return &tbl, nil
}

// extractChoropleth handles location/value map traces. The value column is
// named from the figure's color-axis title when present.
func (e *Extractor) extractChoropleth(tr models.Trace) (*models.Table, error) {
	locations, hasLoc, err := fieldValues(tr, "locations")
	if err != nil {
		return nil, err
	}
	zs, hasZ, err := fieldValues(tr, "z")
	if err != nil {
		return nil, err
	}
	if !hasLoc && !hasZ {
		return nil, nil
	}

	valueName := e.fig.ColorAxisTitle()
	if valueName == "" {
		valueName = "value"
	}
	meta := newMeta(tr)
	meta["valueTitle"] = valueName
	if lm := tr.StringField("locationmode"); lm != "" {
		meta["locationmode"] = lm
	}
	if geo := tr.StringField("geo"); geo != "" {
		meta["geo"] = geo
	}
	columns := []models.Column{
		{Name: "location", Values: locations},
		{Name: valueName, Values: zs},
	}
	tbl := models.NewTable(tr.Name(), columns, meta)
	return &tbl, nil
}

// extractDistribution handles box and violin traces. When the category
// array is absent the trace name is repeated as the category for every
// observation (long form).
func (e *Extractor) extractDistribution(tr models.Trace) (*models.Table, error) {
	xs, hasX, err := fieldValues(tr, "x")
	if err != nil {
		return nil, err
	}
	ys, hasY, err := fieldValues(tr, "y")
	if err != nil {
		return nil, err
	}
	if !hasX && !hasY {
		return nil, nil
	}

	// Horizontal traces carry their observations in x.
	vals := ys
	cats := xs
	if !hasY {
		vals = xs
		cats = nil
	}

	meta := newMeta(tr)
	if len(cats) == 0 {
		category := tr.Name()
		if category == "" {
			category = tr.Type()
		}
		cats = make([]any, len(vals))
		for i := range cats {
			cats[i] = category
		}
		meta["longForm"] = true
	}

	catName := e.fig.XAxisTitle()
	if catName == "" {
		catName = "x"
	}
	valName := e.fig.YAxisTitle()
	if valName == "" {
		valName = "y"
	}
	columns := []models.Column{
		{Name: catName, Values: cats},
		{Name: valName, Values: vals},
	}
	tbl := models.NewTable(tr.Name(), columns, meta)
	return &tbl, nil
}

// extractCartesian handles parallel x/y traces. A y field holding nested
// arrays expands to long form: each sub-array element becomes its own row
// paired with the repeated outer x value.
func (e *Extractor) extractCartesian(tr models.Trace) (*models.Table, error) {
	xs, hasX, err := fieldValues(tr, "x")
	if err != nil {
		return nil, err
	}
	ys, hasY, err := fieldValues(tr, "y")
	if err != nil {
		return nil, err
	}
	if !hasY {
		return e.extractFallback(tr)
	}

	meta := newMeta(tr)
	xName := e.xColumnName()
	yName := e.valueColumnName(tr)

	if isNested(ys) {
		var outX, outY []any
		for i, subRaw := range ys {
			xv := any(i)
			if i < len(xs) {
				xv = xs[i]
			}
			sub, ok := subRaw.([]any)
			if !ok {
				outX = append(outX, xv)
				outY = append(outY, subRaw)
				continue
			}
			for _, v := range sub {
				outX = append(outX, xv)
				outY = append(outY, v)
			}
		}
		meta["longForm"] = true
		xs, ys = outX, outY
	} else if !hasX || len(xs) == 0 {
		xs = indexValues(len(ys))
	}

	columns := []models.Column{
		{Name: xName, Values: xs},
		{Name: yName, Values: ys},
	}
	tbl := models.NewTable(tr.Name(), columns, meta)
	return &tbl, nil
}

// extractFallback scans a trace for any recognizable array field and emits
// one column per present field. A trace with none of the fields carries
// nothing to tabulate and is dropped.
func (e *Extractor) extractFallback(tr models.Trace) (*models.Table, error) {
	var columns []models.Column
	for _, key := range fallbackFields {
		vals, ok, err := flatValues(tr, key)
		if err != nil {
			return nil, err
		}
		if ok && len(vals) > 0 {
			columns = append(columns, models.Column{Name: key, Values: vals})
		}
	}
	if len(columns) == 0 {
		return nil, nil
	}
	tbl := models.NewTable(tr.Name(), columns, newMeta(tr))
	return &tbl, nil
}
