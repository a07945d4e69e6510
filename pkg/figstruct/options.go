// Package figstruct converts chart-specification figures into canonical
// tabular datasets.
package figstruct

// Options configures table extraction.
type Options struct {
	// MergeCartesian merges the two-column cartesian tables into one wide
	// table keyed by the union of x-values. Unmergeable tables pass
	// through alongside the merged result.
	MergeCartesian bool
	// CoerceDates reinterprets values of the resolved x column as
	// calendar timestamps after extraction.
	CoerceDates bool
	// UnnamedYPrefix prefixes generated value-column names for untitled
	// traces. Empty means "y".
	UnnamedYPrefix string
	// XColumnName overrides the x column name for cartesian traces.
	// Empty defers to the figure's x-axis title, then the literal "x".
	XColumnName string
	// OnTraceError receives per-trace extraction failures (as *TraceError
	// values). A failed trace contributes no table and never aborts its
	// siblings; nil discards the diagnostics.
	OnTraceError func(err error)
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{UnnamedYPrefix: "y"}
}

// yPrefix returns the effective generated-name prefix.
func (o Options) yPrefix() string {
	if o.UnnamedYPrefix == "" {
		return "y"
	}
	return o.UnnamedYPrefix
}
