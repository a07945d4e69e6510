// Package models defines data structures for figure extraction.
package models

import "strings"

// Trace represents one data series within a figure. Figure producers vary
// widely in which fields they populate and what shape each field takes
// (plain arrays, nested arrays, or the binary-encoded array form), so a
// trace is kept as an open mapping and read through typed accessors.
type Trace map[string]any

// Type returns the lower-cased trace type, or "" when absent.
func (t Trace) Type() string {
	s, _ := t["type"].(string)
	return strings.ToLower(strings.TrimSpace(s))
}

// Name returns the trace display name, or "" when absent.
func (t Trace) Name() string {
	s, _ := t["name"].(string)
	return s
}

// StringField returns the named field as a string, or "" when the field is
// absent or not a string.
func (t Trace) StringField(key string) string {
	s, _ := t[key].(string)
	return s
}

// Figure is a full chart specification: ordered traces plus layout metadata
// (axis titles, color-axis configuration). A figure is read-only input and
// is never mutated by extraction.
type Figure struct {
	// Data is the ordered list of traces.
	Data []Trace `json:"data"`
	// Layout holds axis titles and other layout metadata.
	Layout map[string]any `json:"layout,omitempty"`
}

// XAxisTitle returns the x-axis title from the layout, or "".
func (f *Figure) XAxisTitle() string {
	return f.axisTitle("xaxis")
}

// YAxisTitle returns the y-axis title from the layout, or "".
func (f *Figure) YAxisTitle() string {
	return f.axisTitle("yaxis")
}

// ColorAxisTitle returns the color-axis (colorbar) title from the layout,
// or "". Used to name the value column of choropleth traces.
func (f *Figure) ColorAxisTitle() string {
	if f == nil || f.Layout == nil {
		return ""
	}
	coloraxis, ok := f.Layout["coloraxis"].(map[string]any)
	if !ok {
		return ""
	}
	colorbar, ok := coloraxis["colorbar"].(map[string]any)
	if !ok {
		return ""
	}
	return titleText(colorbar["title"])
}

// axisTitle digs layout.<axis>.title out of the layout mapping. The title
// may be a bare string or a {text: ...} object depending on the producer.
func (f *Figure) axisTitle(axis string) string {
	if f == nil || f.Layout == nil {
		return ""
	}
	ax, ok := f.Layout[axis].(map[string]any)
	if !ok {
		return ""
	}
	return titleText(ax["title"])
}

// titleText unwraps a title value that is either a string or a {text: ...}
// mapping.
func titleText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if s, ok := t["text"].(string); ok {
			return s
		}
	}
	return ""
}
