// Package models defines data structures for drug-list extraction.
package models

// Category represents one node of a sheet's category hierarchy.
// Codes nest by length: a shorter code opened earlier in the sheet
// encloses the longer codes that follow it.
type Category struct {
	// Code is the category code from the sheet's first column.
	Code string `json:"code"`
	// Name is the category display name.
	Name string `json:"name"`
	// Level is the nesting depth (1 = root).
	Level int `json:"level"`
	// ParentCode is the enclosing category's code, empty for roots.
	ParentCode string `json:"parent_code,omitempty"`
	// Subcategories maps child code to child category. Empty until the
	// flat registry is assembled into a tree.
	Subcategories map[string]*Category `json:"subcategories"`
	// MedicineCount is the direct medicine count before assembly and
	// the cumulative subtree count after.
	MedicineCount int `json:"medicine_count"`
}
