package parser

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/wrappedin/wrapped-go/pkg/wrapped/models"
	"github.com/xuri/excelize/v2"
)

// engagementSheetNames covers the naming drift this sheet shows across
// export revisions.
var engagementSheetNames = []string{"ENGAGEMENT", "Engagement", "ENGAGEMENTS", "DAILY ENGAGEMENT", "DAILY"}

// ParseEngagement extracts the per-day metric series. The header row is
// located by a "date" keyword in the first two columns; the metric columns
// are then mapped by their own header keywords. Duplicate dates keep the
// first occurrence; the series is sorted ascending by date afterwards.
func ParseEngagement(f *excelize.File, log *slog.Logger) ([]models.DailyEngagement, error) {
	sheet, ok := FindSheet(f, engagementSheetNames)
	if !ok {
		log.Warn("section sheet not found", "section", "engagement", "candidates", engagementSheetNames)
		return nil, nil
	}
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	headerRow := -1
	for r := 0; r < headerScanRows && r < len(rows); r++ {
		if strings.Contains(lowerCellAt(rows, r, 0), "date") || strings.Contains(lowerCellAt(rows, r, 1), "date") {
			headerRow = r
			break
		}
	}
	if headerRow < 0 {
		log.Warn("no engagement header row found", "sheet", sheet)
		return nil, nil
	}

	dateCol, engCol, impCol := -1, -1, -1
	for c := range rows[headerRow] {
		h := lowerCellAt(rows, headerRow, c)
		switch {
		case strings.Contains(h, "date"):
			dateCol = c
		case strings.Contains(h, "impression"):
			impCol = c
		case strings.Contains(h, "engagement"):
			engCol = c
		}
	}
	if dateCol < 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	var series []models.DailyEngagement
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

		date := ParseDate(cellAt(rows, r, dateCol))
		if date == "" || seen[date] {
			continue
		}
		seen[date] = true
		pt := models.DailyEngagement{Date: date}
		if engCol >= 0 {
			pt.Engagements = ParseNumber(cellAt(rows, r, engCol))
		}
		if impCol >= 0 {
			pt.Impressions = ParseNumber(cellAt(rows, r, impCol))
		}
		series = append(series, pt)
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}
