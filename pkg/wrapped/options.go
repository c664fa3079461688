// Package wrapped parses LinkedIn analytics spreadsheet exports into a
// normalized record for dashboard and share-card rendering.
package wrapped

import "log/slog"

// Options configures parsing behavior.
type Options struct {
	// Logger receives section-absence and section-failure warnings.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// RankByMetric re-sorts top posts by engagements before ranks are
	// assigned. The default trusts the export's own ordering, which the
	// platform emits pre-sorted by relevance.
	RankByMetric bool
}

// DefaultOptions returns default parsing options.
func DefaultOptions() Options {
	return Options{}
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
