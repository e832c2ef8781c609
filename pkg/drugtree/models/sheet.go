package models

// SheetResult represents the structured output for a single sheet.
type SheetResult struct {
	// Categories maps root category code to its assembled subtree.
	Categories map[string]*Category `json:"categories"`
	// Medicines contains the sheet's medicines in row order.
	Medicines []Medicine `json:"medicines"`
}
