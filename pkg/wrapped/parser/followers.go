package parser

import (
	"log/slog"
	"strings"

	"github.com/wrappedin/wrapped-go/pkg/wrapped/models"
	"github.com/xuri/excelize/v2"
)

var followersSheetNames = []string{"FOLLOWERS", "Followers", "NEW FOLLOWERS"}

// ParseFollowers extracts the period-end follower total from the labelled
// rows at the top of the sheet, then locates the per-day New-followers
// table header and sums its column. Either half may be missing on its
// own; the section is nil only when both are.
func ParseFollowers(f *excelize.File, log *slog.Logger) (*models.Followers, error) {
	sheet, ok := FindSheet(f, followersSheetNames)
	if !ok {
		log.Warn("section sheet not found", "section", "followers", "candidates", followersSheetNames)
		return nil, nil
	}
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	res := &models.Followers{}
	found := false
	for r := 0; r < headerScanRows && r < len(rows); r++ {
		if strings.Contains(lowerCellAt(rows, r, 0), "total followers") {
			res.TotalFollowers = int(ParseNumber(cellAt(rows, r, 1)))
			found = true
			break
		}
	}

	headerRow, col := findColumnHeader(rows, "new followers")
	if headerRow >= 0 {
		sum := 0.0
		emptyRun := 0
		for r := headerRow + 1; r < headerRow+1+dataScanRows && r < len(rows); r++ {
			if rowEmpty(rows, r) {
				emptyRun++
				if emptyRun >= maxEmptyRowRun {
					break
				}
				continue
			}
			emptyRun = 0
			sum += ParseNumber(cellAt(rows, r, col))
		}
		nf := int(sum)
		res.NewFollowers = &nf
		found = true
	}

	if !found {
		log.Warn("no follower data recognized", "sheet", sheet)
		return nil, nil
	}
	return res, nil
}

// findColumnHeader scans the leading rows for a header cell containing the
// keyword and returns its (row, col), or (-1, -1) when absent. The header
// row position is not fixed across export revisions.
func findColumnHeader(rows [][]string, keyword string) (int, int) {
	for r := 0; r < headerScanRows && r < len(rows); r++ {
		for c := range rows[r] {
			if strings.Contains(lowerCellAt(rows, r, c), keyword) {
				return r, c
			}
		}
	}
	return -1, -1
}
