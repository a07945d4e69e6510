package parser

import (
	"math"
	"strconv"
	"strings"
)

// ResolveShape arranges a flat cell sequence into rows. The candidate shape
// is taken from, in order: an explicit shape hint of rank >= 2, the axis
// label lengths (ny rows by nx columns), a perfect-square fallback, and
// finally a single row holding the entire sequence. nx and ny are the
// x/y label counts; zero means unknown.
func ResolveShape(flat []any, hint any, nx, ny int) [][]any {
	dims := parseShapeHint(hint)

	var rows, cols int
	switch {
	case len(dims) >= 2 && dims[0] > 0 && dims[1] > 0:
		rows, cols = dims[0], dims[1]
	case nx > 0 && ny > 0:
		rows, cols = ny, nx
	default:
		if n := int(math.Sqrt(float64(len(flat)))); n > 0 && n*n == len(flat) {
			rows, cols = n, n
		} else {
			rows, cols = 1, len(flat)
		}
	}

	return NormalizeGrid(reshape(flat, rows, cols), nx, ny)
}

// NormalizeGrid corrects a 2-D arrangement against the axis label lengths:
// it transposes when the direct shape disagrees with the labels but the
// flipped one agrees, then clips or nil-pads rows and columns to the label
// counts so column lengths are always well-defined. When both orientations
// agree (square data) the direct interpretation is kept.
func NormalizeGrid(grid [][]any, nx, ny int) [][]any {
	rows := len(grid)
	cols := 0
	for _, r := range grid {
		if len(r) > cols {
			cols = len(r)
		}
	}

	if nx > 0 && ny > 0 && !(rows == ny && cols == nx) && rows == nx && cols == ny {
		grid = transpose(grid, rows, cols)
		rows, cols = cols, rows
	}

	if ny > 0 && rows != ny {
		for len(grid) < ny {
			grid = append(grid, nil)
		}
		grid = grid[:ny]
	}
	if nx > 0 {
		cols = nx
	}
	if cols > 0 {
		for i := range grid {
			for len(grid[i]) < cols {
				grid[i] = append(grid[i], nil)
			}
			grid[i] = grid[i][:cols]
		}
	}
	return grid
}

// reshape lays a flat sequence out row-major as rows x cols, nil-padding
// missing trailing cells.
func reshape(flat []any, rows, cols int) [][]any {
	grid := make([][]any, rows)
	for r := 0; r < rows; r++ {
		row := make([]any, cols)
		for c := 0; c < cols; c++ {
			if i := r*cols + c; i < len(flat) {
				row[c] = flat[i]
			}
		}
		grid[r] = row
	}
	return grid
}

// transpose flips a rows x cols grid, nil-filling ragged cells.
func transpose(grid [][]any, rows, cols int) [][]any {
	out := make([][]any, cols)
	for c := 0; c < cols; c++ {
		row := make([]any, rows)
		for r := 0; r < rows; r++ {
			if c < len(grid[r]) {
				row[r] = grid[r][c]
			}
		}
		out[c] = row
	}
	return out
}

// parseShapeHint normalizes a shape hint to a list of positive dimensions.
// Accepted forms: a numeric array, or a string of integers separated by
// commas, 'x', ';', or spaces. Anything uninterpretable yields nil and the
// caller falls back to heuristics.
func parseShapeHint(hint any) []int {
	switch v := hint.(type) {
	case nil:
		return nil
	case []int:
		return v
	case []any:
		dims := make([]int, 0, len(v))
		for _, d := range v {
			n, ok := toInt(d)
			if !ok {
				return nil
			}
			dims = append(dims, n)
		}
		return dims
	case string:
		fields := strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == 'x' || r == ';' || r == ' '
		})
		dims := make([]int, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil
			}
			dims = append(dims, n)
		}
		return dims
	}
	return nil
}

// toInt converts a generic numeric cell to an int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}
