package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
)

// WriteCSV writes a table as CSV: a header row of column names followed by
// one record per table row. Nil cells render as empty fields and
// timestamps as ISO-8601.
func WriteCSV(w io.Writer, t models.Table) error {
	cw := csv.NewWriter(w)
	for _, row := range t.Rows() {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatCell renders one cell value as a CSV field.
func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'g', -1, 64)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	case time.Time:
		return c.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(c)
	}
}
