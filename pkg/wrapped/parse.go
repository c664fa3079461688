package wrapped

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/wrappedin/wrapped-go/pkg/wrapped/models"
	"github.com/wrappedin/wrapped-go/pkg/wrapped/parser"
	"github.com/wrappedin/wrapped-go/pkg/wrapped/stats"
	"github.com/xuri/excelize/v2"
)

// Parse opens a workbook from raw bytes and extracts every section it can
// find. Only a structurally unreadable workbook produces an error; an
// absent or malformed section degrades to a nil field on the record, so
// callers must treat every field as optional.
func Parse(data []byte, opts Options) (*models.AnalyticsRecord, error) {
	return ParseContext(context.Background(), data, opts)
}

// ParseFile reads path and parses it. See Parse.
func ParseFile(path string, opts Options) (*models.AnalyticsRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts)
}

// ParseContext is Parse with cancellation checked between section parsers.
// A started section runs to completion; the check happens at section
// boundaries only.
func ParseContext(ctx context.Context, data []byte, opts Options) (*models.AnalyticsRecord, error) {
	opts.defaults()
	log := opts.Logger

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()
	if len(f.GetSheetList()) == 0 {
		return nil, ErrNoSheets
	}

	rec := &models.AnalyticsRecord{}
	sections := []struct {
		name string
		run  func() error
	}{
		{"discovery", func() (err error) {
			rec.Discovery, err = parser.ParseDiscovery(f, log)
			return
		}},
		{"followers", func() (err error) {
			rec.Followers, err = parser.ParseFollowers(f, log)
			return
		}},
		{"top_posts", func() (err error) {
			rec.TopPosts, err = parser.ParseTopPosts(f, log, opts.RankByMetric)
			return
		}},
		{"demographics", func() (err error) {
			rec.Demographics, err = parser.ParseDemographics(f, log)
			return
		}},
		{"engagement", func() (err error) {
			rec.Daily, err = parser.ParseEngagement(f, log)
			return
		}},
	}
	for _, s := range sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.run(); err != nil {
			log.Warn("section skipped", "error", NewSectionError(s.name, err))
		}
	}

	mergeDerived(rec)
	return rec, nil
}

// mergeDerived applies the cross-section merge rules: the followers total
// enriches the discovery record, and aggregates derived from the per-day
// series override the coarser values the discovery sheet carries itself.
func mergeDerived(rec *models.AnalyticsRecord) {
	if rec.Discovery == nil {
		return
	}
	if rec.Followers != nil && rec.Followers.NewFollowers != nil {
		// Only a per-day table that was actually found may replace what
		// the discovery sheet carries; a missing table is not a zero.
		nf := *rec.Followers.NewFollowers
		rec.Discovery.NewFollowers = &nf
	}
	if len(rec.Daily) > 0 {
		total := int(stats.SumEngagements(rec.Daily))
		rec.Discovery.TotalEngagements = &total
		median := stats.MedianImpressions(rec.Daily)
		rec.Discovery.AvgImpressionsPerDay = &median
	}
}
