// Package output serializes extraction results to JSON.
package output

import (
	"encoding/json"

	"github.com/lwei/drugtree/pkg/drugtree/models"
)

// ToJSON serializes a whole workbook's results.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(wb, "", "  ")
	}
	return json.Marshal(wb)
}

// SheetToJSON serializes one sheet's {categories, medicines} document.
func SheetToJSON(res *models.SheetResult, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(res, "", "  ")
	}
	return json.Marshal(res)
}
