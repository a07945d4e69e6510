package output

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
)

// sheetNameMax is the workbook limit on sheet name length.
const sheetNameMax = 31

// WriteXLSX writes one sheet per table to an xlsx workbook at path. Sheet
// names come from table titles, falling back to Table_N, and are sanitized
// against the workbook naming rules.
func WriteXLSX(path string, tables []models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	used := make(map[string]bool)
	for i, t := range tables {
		name := sheetName(t.Title, i, used)
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return err
			}
		}
		if err := writeSheet(f, name, t); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// writeSheet fills one sheet with a table's header and value rows.
func writeSheet(f *excelize.File, sheet string, t models.Table) error {
	for r, row := range t.Rows() {
		for c, cell := range row {
			if cell == nil {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, axis, cell); err != nil {
				return err
			}
		}
	}
	return nil
}

// sheetName derives a unique, rule-conforming sheet name.
func sheetName(title string, ordinal int, used map[string]bool) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = fmt.Sprintf("Table_%d", ordinal+1)
	}
	// Characters the workbook format forbids in sheet names.
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, name)
	if len(name) > sheetNameMax {
		name = name[:sheetNameMax]
	}
	base := name
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf("_%d", n)
		if len(base)+len(suffix) > sheetNameMax {
			name = base[:sheetNameMax-len(suffix)] + suffix
		} else {
			name = base + suffix
		}
	}
	used[name] = true
	return name
}
