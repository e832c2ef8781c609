package drugtree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/lwei/drugtree/pkg/drugtree/models"
	"github.com/lwei/drugtree/pkg/drugtree/parser"
	"github.com/lwei/drugtree/pkg/drugtree/tree"
)

// Extract reads every selected sheet of the workbook at path, rebuilds
// its category hierarchy, and collects its medicines.
//
// Sheets are independent: a sheet that fails its output shape check is
// dropped from the result and reported in the returned error, while the
// remaining sheets are processed normally. The returned WorkbookData is
// non-nil whenever the workbook itself could be opened.
func Extract(path string, opts Options) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log := opts.logger()
	table := opts.table()
	wb := &models.WorkbookData{
		BookName: filepath.Base(path),
		Sheets:   make(map[string]models.SheetResult),
	}

	var sheetErrs []error
	for _, sheetName := range f.GetSheetList() {
		if !opts.wantSheet(sheetName) {
			continue
		}
		rows, err := f.GetRows(sheetName)
		if err != nil {
			sheetErrs = append(sheetErrs, fmt.Errorf("sheet %q: %w", sheetName, err))
			log.Warn().Err(err).Str("sheet", sheetName).Msg("failed to read rows, skipping sheet")
			continue
		}

		m, known := table.For(sheetName)
		if !known {
			log.Warn().Str("sheet", sheetName).Msg("no column map for sheet, no medicines will be extracted")
		}

		res := parser.Classify(rows, sheetName, m)
		if err := checkMedicineShape(sheetName, res.Medicines); err != nil {
			sheetErrs = append(sheetErrs, err)
			log.Error().Err(err).Str("sheet", sheetName).Msg("sheet output failed shape check")
			continue
		}

		forest, err := tree.Assemble(res.Categories)
		if err != nil {
			sheetErrs = append(sheetErrs, fmt.Errorf("sheet %q: %w", sheetName, err))
			log.Error().Err(err).Str("sheet", sheetName).Msg("category tree assembly failed")
			continue
		}

		wb.Sheets[sheetName] = models.SheetResult{
			Categories: forest,
			Medicines:  res.Medicines,
		}
		log.Info().
			Str("sheet", sheetName).
			Int("medicines", len(res.Medicines)).
			Int("categories", len(res.Categories)).
			Msg("sheet processed")
	}

	return wb, errors.Join(sheetErrs...)
}

// checkMedicineShape enforces the output contract: every medicine must
// carry the all_category_codes field, even when empty.
func checkMedicineShape(sheet string, medicines []models.Medicine) error {
	for i, med := range medicines {
		if med.AllCategoryCodes == nil {
			return &ShapeError{Sheet: sheet, Index: i}
		}
	}
	return nil
}
