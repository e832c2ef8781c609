// Package main provides the CLI entry point for drugtree.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lwei/drugtree/internal/logging"
	"github.com/lwei/drugtree/pkg/drugtree"
	"github.com/lwei/drugtree/pkg/drugtree/colmap"
	"github.com/lwei/drugtree/pkg/drugtree/models"
	"github.com/lwei/drugtree/pkg/drugtree/output"
)

var (
	outputPath string
	pretty     bool
	sheetsDir  string
	sheets     []string
	colMapPath string
	logFormat  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "drugtree [input.xlsx]",
		Short: "Convert drug-list spreadsheets to category-tree JSON",
		Long: `drugtree reads a multi-sheet drug pricing workbook, rebuilds each
sheet's category hierarchy from the code column, and outputs JSON with
the nested categories and the medicine list per sheet.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	rootCmd.Flags().StringArrayVar(&sheets, "sheet", nil, "Process only the named sheet (repeatable)")
	rootCmd.Flags().StringVar(&colMapPath, "col-map", "", "YAML file overriding per-sheet column layouts")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	logger := logging.Setup(logFormat)

	opts := drugtree.Options{
		Sheets: sheets,
		Logger: &logger,
	}
	if colMapPath != "" {
		table, err := colmap.Load(colMapPath)
		if err != nil {
			return fmt.Errorf("load column map: %w", err)
		}
		opts.ColumnMaps = table
	}

	wb, extractErr := drugtree.Extract(inputPath, opts)
	if wb == nil {
		return fmt.Errorf("extraction failed: %w", extractErr)
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir, logger); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	} else {
		jsonData, err := output.ToJSON(wb, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if outputPath != "" {
			if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		} else {
			fmt.Println(string(jsonData))
		}
	}

	summarize(logger, wb)

	// Sheet-level failures exit non-zero even though the remaining
	// sheets were written.
	if extractErr != nil {
		return extractErr
	}
	return nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string, logger zerolog.Logger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for sheetName, sheet := range wb.Sheets {
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetName+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
		logger.Info().Str("sheet", sheetName).Str("file", filename).Msg("sheet written")
	}

	return nil
}

func summarize(logger zerolog.Logger, wb *models.WorkbookData) {
	for sheetName, sheet := range wb.Sheets {
		ev := logger.Info().
			Str("sheet", sheetName).
			Int("medicines", len(sheet.Medicines)).
			Int("categories", countCategories(sheet.Categories))
		if len(sheet.Medicines) > 0 {
			sample := sheet.Medicines[0]
			ev = ev.Str("sample", sample.Name).Strs("sample_lineage", sample.AllCategoryCodes)
		}
		ev.Msg("sheet summary")
	}
}

// countCategories counts every node of an assembled forest.
func countCategories(roots map[string]*models.Category) int {
	n := 0
	for _, root := range roots {
		n += 1 + countCategories(root.Subcategories)
	}
	return n
}
