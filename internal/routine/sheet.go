// Package routine turns the raw spreadsheet uploads into the published
// class-schedule rows and the teacher directory.
package routine

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadSheet loads the first worksheet of an xlsx/xlsm stream as a row grid.
// Trailing empty cells are absent from short rows, which Normalize and
// ParseTeacherInfo tolerate.
func ReadSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// cell returns the trimmed cell at idx, "" when the row is short or idx < 0.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// headerIndex finds the first header column whose text contains any of the
// given fragments, case-insensitively. Returns -1 when absent.
func headerIndex(header []string, fragments ...string) int {
	for i, h := range header {
		lh := strings.ToLower(strings.TrimSpace(h))
		if lh == "" {
			continue
		}
		for _, frag := range fragments {
			if strings.Contains(lh, frag) {
				return i
			}
		}
	}
	return -1
}
