// Package output serializes extracted tables to JSON, CSV, and XLSX.
package output

import (
	"encoding/json"

	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
)

// ToJSON serializes a table list to JSON.
func ToJSON(tables []models.Table, pretty bool) ([]byte, error) {
	if tables == nil {
		tables = []models.Table{}
	}
	if pretty {
		return json.MarshalIndent(tables, "", "  ")
	}
	return json.Marshal(tables)
}

// TableToJSON serializes a single table to JSON.
func TableToJSON(t *models.Table, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(t, "", "  ")
	}
	return json.Marshal(t)
}
