package models

// Medicine represents one data row of a sheet, annotated with the
// category lineage that was open when the row was read.
type Medicine struct {
	// ID is the sheet name joined with the 0-based row index.
	ID string `json:"id"`
	// Name is the medicine display name.
	Name string `json:"name"`
	// Sheet is the source sheet name.
	Sheet string `json:"sheet"`
	// CategoryCode is the nearest enclosing category's code.
	CategoryCode string `json:"category_code,omitempty"`
	// CategoryName is the nearest enclosing category's name.
	CategoryName string `json:"category_name,omitempty"`
	// AllCategoryCodes is the root-to-leaf list of enclosing category
	// codes. Always present, empty when no category was open.
	AllCategoryCodes []string `json:"all_category_codes"`
	// Dosage is the dosage form (nil when the sheet has no dosage column).
	Dosage *string `json:"dosage,omitempty"`
	// PaymentStandard holds the non-empty payment standard cells in
	// column order (nil when the sheet has no such columns).
	PaymentStandard []string `json:"payment_standard,omitempty"`
	// Note is the remark text, joined from multiple columns on sheets
	// that spread it across several cells.
	Note *string `json:"note,omitempty"`
	// ValidityPeriod is the agreement validity period.
	ValidityPeriod *string `json:"validity_period,omitempty"`
}
