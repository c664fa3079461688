// Package parser locates and extracts sections from a LinkedIn analytics
// workbook. The export has no fixed schema: sheet names, header row
// positions, and date formats all drift across revisions, so every parser
// here works as a tolerant scanner over bounded row windows instead of a
// fixed-offset reader.
package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Scan windows and the early-exit policy shared by all section parsers.
// These constants encode the reliability policy: how far we are willing to
// look for a header, how many data rows an export can plausibly carry, and
// how many consecutive blank rows end a table.
const (
	// headerScanRows bounds the search for a header or label row.
	headerScanRows = 10
	// labelScanRows bounds the search for labelled metric cells.
	labelScanRows = 100
	// dataScanRows bounds the scan over tabular data rows.
	dataScanRows = 500
	// maxEmptyRowRun is the number of consecutive fully-empty rows after
	// which a data scan stops, applied uniformly across all parsers.
	maxEmptyRowRun = 5
)

// FindSheet returns the first sheet whose name matches one of the
// candidates, case-insensitively, trying candidates in order. The boolean
// reports whether a match was found; a missing sheet is not an error but
// the "section absent" signal.
func FindSheet(f *excelize.File, candidates []string) (string, bool) {
	sheets := f.GetSheetList()
	for _, want := range candidates {
		for _, name := range sheets {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				return name, true
			}
		}
	}
	return "", false
}

// Cell reads a single cell's raw value by column letter and 1-based row.
// Out-of-range and empty cells come back as "": at this layer a missing
// cell is never an error.
func Cell(f *excelize.File, sheet, col string, row int) string {
	v, err := f.GetCellValue(sheet, fmt.Sprintf("%s%d", col, row))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// sheetRows reads the full cell grid of a sheet. The grid is ragged: rows
// carry only as many columns as their last non-empty cell.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	return f.GetRows(sheet)
}

// cellAt returns the trimmed raw value at 0-based (row, col), or "" when
// the address is outside the grid. It never fails: an out-of-range read is
// indistinguishable from an empty cell, which is what the tolerant
// scanners want.
func cellAt(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) {
		return ""
	}
	r := rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// lowerCellAt is cellAt lowercased, for keyword matching.
func lowerCellAt(rows [][]string, row, col int) string {
	return strings.ToLower(cellAt(rows, row, col))
}

// rowEmpty reports whether a row has no non-blank cell.
func rowEmpty(rows [][]string, row int) bool {
	if row < 0 || row >= len(rows) {
		return true
	}
	for _, c := range rows[row] {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
