// Package parser classifies sheet rows into category headers and
// medicine rows, and builds the flat category registry.
package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lwei/drugtree/pkg/drugtree/colmap"
	"github.com/lwei/drugtree/pkg/drugtree/models"
)

// headerRows is the number of leading header rows every sheet carries.
const headerRows = 2

// Result holds one sheet's flat category registry and its medicines in
// row order. Categories are not yet nested; see the tree package.
type Result struct {
	Categories map[string]*models.Category
	Medicines  []models.Medicine
}

// Classify walks a sheet's rows in order. A row with a non-empty first
// cell opens a category; any other row is a medicine candidate attached
// to the nearest open category.
//
// Nesting is inferred from code length alone: before a new category is
// pushed, every open category whose code is at least as long is popped.
// Codes are not required to be literal prefixes of their children, only
// to grow in length along a root-to-leaf path.
func Classify(rows [][]string, sheetName string, m colmap.Map) *Result {
	res := &Result{
		Categories: make(map[string]*models.Category),
		Medicines:  []models.Medicine{},
	}
	var stack []*models.Category

	for idx, row := range rows {
		if idx < headerRows || emptyRow(row) {
			continue
		}

		code := strings.TrimSpace(cellAt(row, 0))
		if code != "" {
			for len(stack) > 0 && codeLen(code) <= codeLen(stack[len(stack)-1].Code) {
				stack = stack[:len(stack)-1]
			}
			cat := &models.Category{
				Code:          code,
				Name:          firstNonEmpty(row, 1),
				Level:         len(stack) + 1,
				Subcategories: map[string]*models.Category{},
			}
			if len(stack) > 0 {
				cat.ParentCode = stack[len(stack)-1].Code
			}
			res.Categories[code] = cat
			stack = append(stack, cat)
			continue
		}

		med, ok := buildMedicine(row, idx, sheetName, m, stack)
		if !ok {
			continue
		}
		if len(stack) > 0 {
			stack[len(stack)-1].MedicineCount++
		}
		res.Medicines = append(res.Medicines, med)
	}
	return res
}

// buildMedicine populates one medicine from a data row. Rows with no
// resolvable name are not medicines.
func buildMedicine(row []string, rowIdx int, sheetName string, m colmap.Map, stack []*models.Category) (models.Medicine, bool) {
	if m.Name == nil {
		return models.Medicine{}, false
	}
	name := m.Name.Value(row)
	if name == "" {
		return models.Medicine{}, false
	}

	med := models.Medicine{
		ID:               fmt.Sprintf("%s_%d", sheetName, rowIdx),
		Name:             name,
		Sheet:            sheetName,
		AllCategoryCodes: []string{},
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		med.CategoryCode = top.Code
		med.CategoryName = top.Name
		med.AllCategoryCodes = make([]string, len(stack))
		for i, cat := range stack {
			med.AllCategoryCodes[i] = cat.Code
		}
	}

	if m.Dosage != nil {
		med.Dosage = strptr(m.Dosage.Value(row))
	}
	if m.PaymentStandard != nil {
		med.PaymentStandard = m.PaymentStandard.Values(row)
	}
	if m.Note != nil {
		med.Note = strptr(m.Note.Value(row))
	}
	if m.ValidityPeriod != nil {
		med.ValidityPeriod = strptr(m.ValidityPeriod.Value(row))
	}
	return med, true
}

// codeLen measures a code in characters, not bytes, so Chinese and
// ASCII codes nest consistently.
func codeLen(code string) int {
	return utf8.RuneCountInString(code)
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cellAt reads a cell by index, treating indexes past the row's length
// as empty.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// firstNonEmpty returns the first non-empty cleaned cell at or after
// column from.
func firstNonEmpty(row []string, from int) string {
	for i := from; i < len(row); i++ {
		if v := strings.TrimSpace(row[i]); v != "" {
			return v
		}
	}
	return ""
}

func strptr(s string) *string { return &s }
