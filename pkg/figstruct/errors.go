package figstruct

import (
	"errors"
	"fmt"
)

// ErrNotBinaryArray indicates a descriptor does not carry the dtype/bdata
// pair of a binary-encoded array.
var ErrNotBinaryArray = errors.New("not a binary-encoded array")

// TraceError reports a failed extraction of a single trace. Extraction of
// sibling traces continues; trace errors are surfaced only through the
// Options.OnTraceError callback.
type TraceError struct {
	// Index is the trace position in figure order.
	Index int
	// TraceType is the trace's declared type, or "" when untyped.
	TraceType string
	// Err is the underlying failure.
	Err error
}

func (e *TraceError) Error() string {
	typ := e.TraceType
	if typ == "" {
		typ = "untyped"
	}
	return fmt.Sprintf("trace %d (%s): %v", e.Index, typ, e.Err)
}

func (e *TraceError) Unwrap() error {
	return e.Err
}
