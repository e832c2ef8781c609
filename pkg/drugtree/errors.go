package drugtree

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input workbook does not exist.
var ErrFileNotFound = errors.New("file not found")

// ShapeError reports a sheet whose medicine list violates the output
// contract: a medicine is missing its lineage field.
type ShapeError struct {
	// Sheet is the offending sheet name.
	Sheet string
	// Index is the offending medicine's position in the sheet output.
	Index int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("sheet %q: medicine %d is missing all_category_codes", e.Sheet, e.Index)
}
