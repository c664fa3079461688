package parser

import (
	"log/slog"
	"strings"

	"github.com/wrappedin/wrapped-go/pkg/wrapped/models"
	"github.com/xuri/excelize/v2"
)

// discoverySheetNames are the sheet names tried, in order, for the
// aggregate period metrics section.
var discoverySheetNames = []string{"DISCOVERY", "Discovery", "OVERALL PERFORMANCE"}

// ParseDiscovery extracts the aggregate period metrics. Metric rows carry
// a label in column A and the value in column B; the date range sits in
// the cell directly below the "Overall performance" label (older exports
// put it in the adjacent cell instead). A missing sheet or a sheet with no
// recognizable labels yields a nil record, never an error.
func ParseDiscovery(f *excelize.File, log *slog.Logger) (*models.Discovery, error) {
	sheet, ok := FindSheet(f, discoverySheetNames)
	if !ok {
		log.Warn("section sheet not found", "section", "discovery", "candidates", discoverySheetNames)
		return nil, nil
	}
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	d := &models.Discovery{}
	found := false
	for r := 0; r < labelScanRows && r < len(rows); r++ {
		label := lowerCellAt(rows, r, 0)
		if label == "" {
			continue
		}
		value := cellAt(rows, r, 1)
		switch {
		case strings.Contains(label, "overall performance"):
			start, end := ParseDateRange(cellAt(rows, r+1, 0))
			if start == "" {
				start, end = ParseDateRange(value)
			}
			if start != "" {
				d.StartDate, d.EndDate = start, end
				found = true
			}
		case strings.Contains(label, "impression"):
			d.TotalImpressions = int(ParseNumber(value))
			found = true
		case strings.Contains(label, "member"):
			d.MembersReached = int(ParseNumber(value))
			found = true
		case strings.Contains(label, "engagement"):
			v := int(ParseNumber(value))
			d.TotalEngagements = &v
			found = true
		case strings.Contains(label, "follower"):
			v := int(ParseNumber(value))
			d.NewFollowers = &v
			found = true
		}
	}
	if !found {
		log.Warn("no discovery labels recognized", "sheet", sheet)
		return nil, nil
	}

	if d.TotalImpressions > 0 && d.StartDate != "" && d.EndDate != "" {
		days := inclusiveDays(d.StartDate, d.EndDate)
		if days < 1 {
			days = 1
		}
		avg := float64(d.TotalImpressions) / float64(days)
		d.AvgImpressionsPerDay = &avg
	}
	return d, nil
}
