package figstruct

import (
	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/parser"
)

// ExtractTables converts every trace of a figure into a canonical table.
// Traces that carry no extractable array data are dropped; a trace whose
// extraction fails contributes no table but never aborts its siblings.
// The call returns a (possibly empty) table list for any input, including
// a nil figure or an empty trace list.
func ExtractTables(fig *models.Figure, opts Options) []models.Table {
	if fig == nil || len(fig.Data) == 0 {
		return nil
	}

	ex := parser.NewExtractor(fig, parser.ExtractParams{
		XColumnName:    opts.XColumnName,
		UnnamedYPrefix: opts.yPrefix(),
	})

	var tables []models.Table
	for i, tr := range fig.Data {
		tbl, err := ex.ExtractTrace(tr)
		if err != nil {
			if opts.OnTraceError != nil {
				opts.OnTraceError(&TraceError{Index: i, TraceType: tr.Type(), Err: err})
			}
			continue
		}
		if tbl != nil {
			tables = append(tables, *tbl)
		}
	}

	xName := resolvedXName(fig, opts)
	if opts.CoerceDates {
		for i := range tables {
			parser.CoerceDateColumn(&tables[i], xName)
		}
	}
	if opts.MergeCartesian {
		tables = mergeByKey(tables, xName)
	}
	return tables
}

// FigureToRows converts each extracted table into a 2-D grid whose first
// row is the column-name header and whose remaining rows carry cell values
// in column order.
func FigureToRows(fig *models.Figure, opts Options) [][][]any {
	tables := ExtractTables(fig, opts)
	grids := make([][][]any, 0, len(tables))
	for _, t := range tables {
		grids = append(grids, t.Rows())
	}
	return grids
}

// MergeCartesianTables unifies several cartesian key/value tables into one
// wide table keyed by the union of key values in first-seen order.
func MergeCartesianTables(tables []models.Table, keyColumnName string) models.Table {
	return parser.MergeCartesianTables(tables, keyColumnName)
}

// DecodeBinaryArray decodes a raw binary-encoded array descriptor
// ({dtype, bdata, shape}) into a flat numeric sequence. It returns
// ErrNotBinaryArray when the descriptor lacks the dtype/bdata pair and a
// *parser.UnsupportedDtypeError when the dtype tag is unrecognized.
func DecodeBinaryArray(descriptor map[string]any) ([]float64, error) {
	ba, ok := parser.AsBinaryArray(descriptor)
	if !ok {
		return nil, ErrNotBinaryArray
	}
	return parser.DecodeBinaryArray(ba)
}

// resolvedXName resolves the x column name used for merging and date
// coercion: explicit override, then the figure's x-axis title, then "x".
func resolvedXName(fig *models.Figure, opts Options) string {
	if opts.XColumnName != "" {
		return opts.XColumnName
	}
	if t := fig.XAxisTitle(); t != "" {
		return t
	}
	return "x"
}

// mergeByKey merges the cartesian-shaped subset of tables and places the
// merged table first, followed by the unmergeable remainder in original
// trace order. Merging is additive, never lossy.
func mergeByKey(tables []models.Table, keyName string) []models.Table {
	var mergeable, rest []models.Table
	for _, t := range tables {
		if parser.IsMergeable(t, keyName) {
			mergeable = append(mergeable, t)
		} else {
			rest = append(rest, t)
		}
	}
	if len(mergeable) < 2 {
		return tables
	}
	merged := parser.MergeCartesianTables(mergeable, keyName)
	out := make([]models.Table, 0, len(rest)+1)
	out = append(out, merged)
	return append(out, rest...)
}
