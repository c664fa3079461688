package parser

import (
	"log/slog"
	"strings"

	"github.com/wrappedin/wrapped-go/pkg/wrapped/models"
	"github.com/xuri/excelize/v2"
)

var demographicsSheetNames = []string{"DEMOGRAPHICS", "Demographics", "AUDIENCE"}

// ParseDemographics extracts the audience breakdowns. The sheet is one
// flat table of (category, name, percentage) rows covering a fixed set of
// categories; rows with unknown category labels are skipped. Source order
// within each category is preserved as-is and nothing is truncated here:
// "top N" trimming belongs to the presentation layer.
func ParseDemographics(f *excelize.File, log *slog.Logger) (*models.Demographics, error) {
	sheet, ok := FindSheet(f, demographicsSheetNames)
	if !ok {
		log.Warn("section sheet not found", "section", "demographics", "candidates", demographicsSheetNames)
		return nil, nil
	}
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	// Data starts below the header row when one exists.
	start := 0
	for r := 0; r < headerScanRows && r < len(rows); r++ {
		if strings.Contains(lowerCellAt(rows, r, 0), "top demographics") {
			start = r + 1
			break
		}
	}

	d := &models.Demographics{}
	emptyRun := 0
	for r := start; r < start+dataScanRows && r < len(rows); r++ {
		if rowEmpty(rows, r) {
			emptyRun++
			if emptyRun >= maxEmptyRowRun {
				break
			}
			continue
		}
		emptyRun = 0

		category := lowerCellAt(rows, r, 0)
		name := cellAt(rows, r, 1)
		raw := cellAt(rows, r, 2)
		if category == "" || name == "" || raw == "" {
			continue
		}
		item := models.DemographicItem{Name: name, Share: ParseShare(raw)}
		switch category {
		case "job titles":
			d.JobTitles = append(d.JobTitles, item)
		case "locations":
			d.Locations = append(d.Locations, item)
		case "industries":
			d.Industries = append(d.Industries, item)
		case "seniority":
			d.Seniority = append(d.Seniority, item)
		case "company size":
			d.CompanySize = append(d.CompanySize, item)
		case "companies":
			d.Companies = append(d.Companies, item)
		}
	}

	if d.Empty() {
		log.Warn("no demographic categories recognized", "sheet", sheet)
		return nil, nil
	}
	return d, nil
}
