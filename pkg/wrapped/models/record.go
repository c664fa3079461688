// Package models defines the normalized analytics data structures.
package models

// Discovery holds the aggregate period metrics from the DISCOVERY sheet.
// Optional fields are pointers: nil means the source never carried the
// value, which is distinct from a true zero.
type Discovery struct {
	// StartDate is the period start in ISO form (YYYY-MM-DD), "" if unknown.
	StartDate string `json:"start_date"`
	// EndDate is the period end in ISO form, "" if unknown.
	EndDate string `json:"end_date"`
	// TotalImpressions is the impression total over the period.
	TotalImpressions int `json:"total_impressions"`
	// MembersReached is the unique-member reach over the period.
	MembersReached int `json:"members_reached"`
	// TotalEngagements is overridden by the daily series sum when present.
	TotalEngagements *int `json:"total_engagements,omitempty"`
	// AvgImpressionsPerDay is overridden by the daily series median when present.
	AvgImpressionsPerDay *float64 `json:"average_impressions_per_day,omitempty"`
	// NewFollowers is merged in from the FOLLOWERS sheet when present.
	NewFollowers *int `json:"new_followers,omitempty"`
}

// Followers holds the follower totals from the FOLLOWERS sheet.
type Followers struct {
	// TotalFollowers is the follower count at period end.
	TotalFollowers int `json:"total_followers"`
	// NewFollowers is the sum of the per-day New-followers column, nil
	// when the sheet carries no per-day table at all.
	NewFollowers *int `json:"new_followers,omitempty"`
}

// Post is one ranked entry from the TOP POSTS sheet.
type Post struct {
	// Rank is 1-based and contiguous, assigned in first-encountered order.
	Rank int `json:"rank"`
	// URL is the canonical post URL and the unique key of the entry.
	URL string `json:"url"`
	// PublishedAt is the post date in ISO form, "" if unparseable.
	PublishedAt string `json:"published_at"`
	// Engagements is the primary metric (left block of the sheet).
	Engagements float64 `json:"engagements"`
	// Impressions is the secondary metric (right block of the sheet).
	Impressions float64 `json:"impressions"`
}

// DemographicItem is one named bucket with its audience share.
type DemographicItem struct {
	Name string `json:"name"`
	// Share is a fraction in [0,1], normalized from the export's percent values.
	Share float64 `json:"share"`
}

// Demographics holds the audience breakdowns from the DEMOGRAPHICS sheet.
// Each category preserves source order; the export pre-sorts descending.
type Demographics struct {
	JobTitles   []DemographicItem `json:"job_titles,omitempty"`
	Locations   []DemographicItem `json:"locations,omitempty"`
	Industries  []DemographicItem `json:"industries,omitempty"`
	Seniority   []DemographicItem `json:"seniority,omitempty"`
	CompanySize []DemographicItem `json:"company_size,omitempty"`
	Companies   []DemographicItem `json:"companies,omitempty"`
}

// Empty reports whether no category produced any item.
func (d *Demographics) Empty() bool {
	return len(d.JobTitles) == 0 && len(d.Locations) == 0 && len(d.Industries) == 0 &&
		len(d.Seniority) == 0 && len(d.CompanySize) == 0 && len(d.Companies) == 0
}

// DailyEngagement is one point of the per-day metric series.
type DailyEngagement struct {
	// Date is the ISO day, unique within one parse.
	Date string `json:"date"`
	// Engagements is the primary per-day value.
	Engagements float64 `json:"engagements"`
	// Impressions is the secondary per-day value.
	Impressions float64 `json:"impressions"`
}

// AnalyticsRecord is the unified output of one parse. Every field is
// optional: a nil field means the corresponding sheet was not found in
// the export, not that parsing failed.
type AnalyticsRecord struct {
	Discovery    *Discovery        `json:"discovery,omitempty"`
	Followers    *Followers        `json:"followers,omitempty"`
	TopPosts     []Post            `json:"top_posts,omitempty"`
	Demographics *Demographics     `json:"demographics,omitempty"`
	Daily        []DailyEngagement `json:"daily_engagement,omitempty"`
}
