package parser

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/wrappedin/wrapped-go/pkg/wrapped/models"
	"github.com/xuri/excelize/v2"
)

var topPostsSheetNames = []string{"TOP POSTS", "Top Posts", "ALL POSTS", "POSTS"}

// Column layout of the two side-by-side blocks: the left block (A-C) ranks
// posts by engagements, the right block (E-G) ranks the same posts by
// impressions, with column D left blank between them.
const (
	leftURLCol     = 0
	leftDateCol    = 1
	leftMetricCol  = 2
	rightURLCol    = 4
	rightDateCol   = 5
	rightMetricCol = 6
)

// ParseTopPosts scans both blocks in a single row loop and merges entries
// into one collection keyed by canonical post URL. The same post usually
// appears in both blocks, each side carrying only its own metric, so on
// collision every metric takes the maximum observed value rather than the
// last one. Insertion order is preserved through the merge and 1-based
// contiguous ranks are assigned at the end; with rankByMetric the entries
// are re-sorted by engagements first instead of trusting source order.
func ParseTopPosts(f *excelize.File, log *slog.Logger, rankByMetric bool) ([]models.Post, error) {
	sheet, ok := FindSheet(f, topPostsSheetNames)
	if !ok {
		log.Warn("section sheet not found", "section", "top_posts", "candidates", topPostsSheetNames)
		return nil, nil
	}
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var order []models.Post
	merge := func(url, date string, engagements, impressions float64) {
		i, ok := index[url]
		if !ok {
			index[url] = len(order)
			order = append(order, models.Post{
				URL:         url,
				PublishedAt: date,
				Engagements: engagements,
				Impressions: impressions,
			})
			return
		}
		p := &order[i]
		if p.PublishedAt == "" {
			p.PublishedAt = date
		}
		p.Engagements = math.Max(p.Engagements, engagements)
		p.Impressions = math.Max(p.Impressions, impressions)
	}

	// The header row is located by keyword; data starts right below it, or
	// at the top when the sheet has no header at all. A cell that parses
	// as a post URL is always data, never a header, even though the URL
	// itself contains "post".
	start := 0
	for r := 0; r < headerScanRows && r < len(rows); r++ {
		if _, ok := ParseURL(cellAt(rows, r, leftURLCol)); ok {
			break
		}
		c0, c1 := lowerCellAt(rows, r, leftURLCol), lowerCellAt(rows, r, leftDateCol)
		if strings.Contains(c0, "url") || strings.Contains(c0, "post") || strings.Contains(c1, "date") {
			start = r + 1
			break
		}
	}

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
		if url, ok := ParseURL(cellAt(rows, r, leftURLCol)); ok {
			merge(url, ParseDate(cellAt(rows, r, leftDateCol)), ParseNumber(cellAt(rows, r, leftMetricCol)), 0)
		}
		if url, ok := ParseURL(cellAt(rows, r, rightURLCol)); ok {
			merge(url, ParseDate(cellAt(rows, r, rightDateCol)), 0, ParseNumber(cellAt(rows, r, rightMetricCol)))
		}
	}

	if rankByMetric {
		sort.SliceStable(order, func(i, j int) bool { return order[i].Engagements > order[j].Engagements })
	}
	for i := range order {
		order[i].Rank = i + 1
	}
	return order, nil
}
