package models

// WorkbookData represents workbook-level container with per-sheet results.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets maps sheet name to SheetResult.
	Sheets map[string]SheetResult `json:"sheets"`
}
