// Package drugtree converts multi-sheet drug-list workbooks into
// per-sheet category trees and medicine lists.
package drugtree

import (
	"github.com/rs/zerolog"

	"github.com/lwei/drugtree/pkg/drugtree/colmap"
)

// Options configures workbook extraction.
type Options struct {
	// Sheets restricts extraction to the named sheets. Empty means all.
	Sheets []string
	// ColumnMaps overrides the built-in per-sheet column layouts.
	// Nil uses colmap.Default().
	ColumnMaps colmap.Table
	// Logger receives per-sheet progress events. Nil logs nothing.
	Logger *zerolog.Logger
}

// DefaultOptions returns options that process every sheet with the
// built-in column maps and no logging.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) table() colmap.Table {
	if o.ColumnMaps != nil {
		return o.ColumnMaps
	}
	return colmap.Default()
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.Nop()
}

func (o Options) wantSheet(name string) bool {
	if len(o.Sheets) == 0 {
		return true
	}
	for _, s := range o.Sheets {
		if s == name {
			return true
		}
	}
	return false
}
