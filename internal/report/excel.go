// Package report writes the finalized institution mapping to a multi-sheet
// Excel workbook, one sheet per institution with Name/Title/Notes columns.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sukarth/faculty-scraper/internal/types"
)

// header is the fixed column row of every institution sheet.
var header = []interface{}{"Name", "Title", "Notes"}

// WorkbookFilename returns the timestamped output filename for a run.
func WorkbookFilename(now time.Time) string {
	return fmt.Sprintf("professors_%s.xlsx", now.Format("20060102_150405"))
}

// WriteWorkbook writes one sheet per institution key, in the given key
// order, to path. Rewriting the same path from the aggregator's current
// state after each processed URL gives incremental saves.
func WriteWorkbook(path string, keys []string, sheets map[string][]types.ProfessorRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for _, key := range keys {
		if _, err := f.NewSheet(key); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", key, err)
		}
		if err := f.SetSheetRow(key, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header for %q: %w", key, err)
		}
		for i, rec := range sheets[key] {
			cell := fmt.Sprintf("A%d", i+2)
			row := []interface{}{rec.Name, rec.Title, rec.Notes}
			if err := f.SetSheetRow(key, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d for %q: %w", i+2, key, err)
			}
		}
	}

	// Drop the default sheet once real sheets exist
	if len(keys) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
