package parser

import (
	"strconv"
	"strings"
	"time"
)

// isoDate is the output layout for every date this package produces.
const isoDate = "2006-01-02"

// platformToken is the domain fragment a post URL must contain to be
// accepted as an identifier.
const platformToken = "linkedin.com"

// numberCleaner strips thousands separators and currency/percent noise
// before numeric parsing.
var numberCleaner = strings.NewReplacer(",", "", "$", "", "%", "", " ", "", "\u00a0", "")

// dateLayouts are the textual date forms seen across export revisions.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"01/02/06",
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// ParseNumber normalizes a raw cell value into a number. Numeric-looking
// strings are cleaned of separators and symbols first; anything that still
// does not parse yields 0. Absence and a true zero are indistinguishable
// at this layer, so callers that care track presence separately.
func ParseNumber(raw string) float64 {
	s := numberCleaner.Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// serialEpoch is day zero of Excel's date serials. Using 1899-12-30
// absorbs the fictitious 1900 leap day Excel inherited from Lotus.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxDateSerial rejects serials past the year ~2400, where a plain large
// number is far more likely a metric than a date.
const maxDateSerial = 200000

// ParseDate normalizes a raw cell value into an ISO date string. It
// accepts Excel date serials and the textual forms in dateLayouts, and
// returns "" for anything else.
func ParseDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || serial > maxDateSerial {
			return ""
		}
		return serialEpoch.AddDate(0, 0, int(serial)).Format(isoDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate)
		}
	}
	// Date-typed cells render through excelize's default "m/d/yy h:mm"
	// style; retry on the date token alone to shed the time part.
	if i := strings.IndexByte(s, ' '); i > 0 {
		return ParseDate(s[:i])
	}
	return ""
}

// ParseDateRange splits a textual "start - end" range and normalizes both
// sides. Both results are "" when the value is not a range or when the end
// precedes the start.
func ParseDateRange(raw string) (start, end string) {
	parts := strings.SplitN(strings.TrimSpace(raw), " - ", 2)
	if len(parts) != 2 {
		return "", ""
	}
	start = ParseDate(parts[0])
	end = ParseDate(parts[1])
	if start == "" || end == "" || end < start {
		return "", ""
	}
	return start, end
}

// ParseURL canonicalizes a post URL: query parameters, fragments, and the
// trailing slash are stripped, and the result must contain the platform
// domain. The boolean is false for anything else.
func ParseURL(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	if s == "" || !strings.Contains(strings.ToLower(s), platformToken) {
		return "", false
	}
	return s, true
}

// ParseShare normalizes a percentage cell into a [0,1] fraction. The
// export writes "< 1%" for sub-percent buckets, and percent columns may
// carry either fractions or 0-100 values depending on the revision.
func ParseShare(raw string) float64 {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "<") {
		return 0.005
	}
	v := ParseNumber(s)
	if v > 1 {
		v /= 100
	}
	if v < 0 {
		return 0
	}
	return v
}

// inclusiveDays counts the days covered by [start, end], both ISO dates,
// counting both endpoints. It returns 0 when either date fails to parse.
func inclusiveDays(start, end string) int {
	s, err := time.Parse(isoDate, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(isoDate, end)
	if err != nil || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
