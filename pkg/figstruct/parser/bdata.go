// Package parser implements the figure extraction core: binary array
// decoding, shape resolution, trace dispatch, table merging, and date
// coercion.
package parser

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
)

// dtypeSize maps binary array dtype tags to their byte widths.
var dtypeSize = map[string]int{
	"i1": 1,
	"u1": 1,
	"i2": 2,
	"u2": 2,
	"i4": 4,
	"u4": 4,
	"f4": 4,
	"f8": 8,
}

// UnsupportedDtypeError indicates a binary-encoded array names a dtype tag
// outside the recognized set.
type UnsupportedDtypeError struct {
	Dtype string
}

func (e *UnsupportedDtypeError) Error() string {
	return fmt.Sprintf("unsupported dtype %q", e.Dtype)
}

// BinaryArray is the compact representation of a flat numeric buffer:
// a dtype tag plus a base64 payload, optionally carrying a shape hint.
type BinaryArray struct {
	// Dtype is one of i1, u1, i2, u2, i4, u4, f4, f8.
	Dtype string
	// BData is the base64-encoded little-endian buffer.
	BData string
	// Shape is an optional shape hint: a numeric array or a delimited
	// string of integers.
	Shape any
}

// AsBinaryArray interprets a raw trace field as a binary-encoded array.
// It reports false when the field does not carry the dtype/bdata pair.
func AsBinaryArray(v any) (*BinaryArray, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	dtype, ok := m["dtype"].(string)
	if !ok {
		return nil, false
	}
	bdata, ok := m["bdata"].(string)
	if !ok {
		return nil, false
	}
	return &BinaryArray{Dtype: dtype, BData: bdata, Shape: m["shape"]}, true
}

// DecodeBinaryArray decodes a binary-encoded array into a flat numeric
// sequence. The payload is read little-endian, matching the typed-array
// semantics of the originating numeric library. A trailing partial element
// is dropped.
func DecodeBinaryArray(ba *BinaryArray) ([]float64, error) {
	size, ok := dtypeSize[ba.Dtype]
	if !ok {
		return nil, &UnsupportedDtypeError{Dtype: ba.Dtype}
	}
	buf, err := base64.StdEncoding.DecodeString(ba.BData)
	if err != nil {
		return nil, fmt.Errorf("decode bdata: %w", err)
	}

	n := len(buf) / size
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		chunk := buf[i*size:]
		switch ba.Dtype {
		case "i1":
			out[i] = float64(int8(chunk[0]))
		case "u1":
			out[i] = float64(chunk[0])
		case "i2":
			out[i] = float64(int16(binary.LittleEndian.Uint16(chunk)))
		case "u2":
			out[i] = float64(binary.LittleEndian.Uint16(chunk))
		case "i4":
			out[i] = float64(int32(binary.LittleEndian.Uint32(chunk)))
		case "u4":
			out[i] = float64(binary.LittleEndian.Uint32(chunk))
		case "f4":
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(chunk)))
		case "f8":
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(chunk))
		}
	}
	return out, nil
}

// boxFloats converts a decoded numeric sequence to generic cell values.
func boxFloats(vals []float64) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
