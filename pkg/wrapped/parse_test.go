package wrapped

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func testOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// fullExport builds an export carrying every section.
func fullExport(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	mustSheet(t, f, "DISCOVERY")
	f.SetCellValue("DISCOVERY", "A1", "Overall Performance")
	f.SetCellValue("DISCOVERY", "A2", "01/01/2025 - 01/10/2025")
	f.SetCellValue("DISCOVERY", "A3", "Impressions")
	f.SetCellValue("DISCOVERY", "B3", 1000)
	f.SetCellValue("DISCOVERY", "A4", "Members reached")
	f.SetCellValue("DISCOVERY", "B4", 400)

	mustSheet(t, f, "FOLLOWERS")
	f.SetCellValue("FOLLOWERS", "A1", "Total followers")
	f.SetCellValue("FOLLOWERS", "B1", 800)
	f.SetCellValue("FOLLOWERS", "A3", "Date")
	f.SetCellValue("FOLLOWERS", "B3", "New followers")
	f.SetCellValue("FOLLOWERS", "A4", "1/1/2025")
	f.SetCellValue("FOLLOWERS", "B4", 3)
	f.SetCellValue("FOLLOWERS", "A5", "1/2/2025")
	f.SetCellValue("FOLLOWERS", "B5", 4)

	mustSheet(t, f, "TOP POSTS")
	f.SetCellValue("TOP POSTS", "A1", "Post URL")
	f.SetCellValue("TOP POSTS", "B1", "Date")
	f.SetCellValue("TOP POSTS", "C1", "Engagements")
	f.SetCellValue("TOP POSTS", "A2", "https://www.linkedin.com/posts/one")
	f.SetCellValue("TOP POSTS", "B2", "1/2/2025")
	f.SetCellValue("TOP POSTS", "C2", 42)
	f.SetCellValue("TOP POSTS", "E2", "https://www.linkedin.com/posts/one?utm=x")
	f.SetCellValue("TOP POSTS", "F2", "1/2/2025")
	f.SetCellValue("TOP POSTS", "G2", 500)

	mustSheet(t, f, "DEMOGRAPHICS")
	f.SetCellValue("DEMOGRAPHICS", "A1", "Top Demographics")
	f.SetCellValue("DEMOGRAPHICS", "A2", "Industries")
	f.SetCellValue("DEMOGRAPHICS", "B2", "Technology")
	f.SetCellValue("DEMOGRAPHICS", "C2", "40%")

	mustSheet(t, f, "ENGAGEMENT")
	f.SetCellValue("ENGAGEMENT", "A1", "Date")
	f.SetCellValue("ENGAGEMENT", "B1", "Impressions")
	f.SetCellValue("ENGAGEMENT", "C1", "Engagements")
	f.SetCellValue("ENGAGEMENT", "A2", "1/1/2025")
	f.SetCellValue("ENGAGEMENT", "B2", 100)
	f.SetCellValue("ENGAGEMENT", "C2", 10)
	f.SetCellValue("ENGAGEMENT", "A3", "1/2/2025")
	f.SetCellValue("ENGAGEMENT", "B3", 200)
	f.SetCellValue("ENGAGEMENT", "C3", 20)
	f.SetCellValue("ENGAGEMENT", "A4", "1/3/2025")
	f.SetCellValue("ENGAGEMENT", "B4", 300)
	f.SetCellValue("ENGAGEMENT", "C4", 30)

	return workbookBytes(t, f)
}

func mustSheet(t *testing.T, f *excelize.File, name string) {
	t.Helper()
	if _, err := f.NewSheet(name); err != nil {
		t.Fatalf("NewSheet(%s): %v", name, err)
	}
}

func workbookBytes(t *testing.T, f *excelize.File) []byte {
	t.Helper()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestParseFullExport(t *testing.T) {
	rec, err := Parse(fullExport(t), testOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if rec.Discovery == nil {
		t.Fatal("discovery missing")
	}
	if rec.Discovery.TotalImpressions != 1000 || rec.Discovery.MembersReached != 400 {
		t.Errorf("discovery totals: %+v", rec.Discovery)
	}
	// Followers merge into discovery.
	if rec.Discovery.NewFollowers == nil || *rec.Discovery.NewFollowers != 7 {
		t.Errorf("NewFollowers = %v, expected 7", rec.Discovery.NewFollowers)
	}
	// Derived metrics override discovery's own values: engagement sum and
	// the median of daily impressions.
	if rec.Discovery.TotalEngagements == nil || *rec.Discovery.TotalEngagements != 60 {
		t.Errorf("TotalEngagements = %v, expected 60", rec.Discovery.TotalEngagements)
	}
	if rec.Discovery.AvgImpressionsPerDay == nil || *rec.Discovery.AvgImpressionsPerDay != 200 {
		t.Errorf("AvgImpressionsPerDay = %v, expected median 200", rec.Discovery.AvgImpressionsPerDay)
	}

	if len(rec.TopPosts) != 1 {
		t.Fatalf("TopPosts = %+v", rec.TopPosts)
	}
	if rec.TopPosts[0].Engagements != 42 || rec.TopPosts[0].Impressions != 500 {
		t.Errorf("two-column merge: %+v", rec.TopPosts[0])
	}
	if rec.Demographics == nil || len(rec.Demographics.Industries) != 1 {
		t.Errorf("demographics: %+v", rec.Demographics)
	}
	if len(rec.Daily) != 3 {
		t.Errorf("daily series: %+v", rec.Daily)
	}
}

func TestParseIdempotent(t *testing.T) {
	data := fullExport(t)
	a, err := Parse(data, testOptions())
	if err != nil {
		t.Fatalf("first Parse: %v", err)
	}
	b, err := Parse(data, testOptions())
	if err != nil {
		t.Fatalf("second Parse: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("parsing the same bytes twice produced different records")
	}
}

func TestParseSectionAbsenceDoesNotAbort(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	mustSheet(t, f, "DEMOGRAPHICS")
	f.SetCellValue("DEMOGRAPHICS", "A1", "Industries")
	f.SetCellValue("DEMOGRAPHICS", "B1", "Technology")
	f.SetCellValue("DEMOGRAPHICS", "C1", "40%")

	rec, err := Parse(workbookBytes(t, f), testOptions())
	if err != nil {
		t.Fatalf("Parse must not fail on missing sections: %v", err)
	}
	if rec.Demographics == nil {
		t.Error("demographics should be populated")
	}
	if rec.Discovery != nil || rec.Followers != nil || rec.TopPosts != nil || rec.Daily != nil {
		t.Errorf("absent sections must stay nil: %+v", rec)
	}
}

func TestParseKeepsDiscoveryNewFollowers(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	mustSheet(t, f, "DISCOVERY")
	f.SetCellValue("DISCOVERY", "A1", "Impressions")
	f.SetCellValue("DISCOVERY", "B1", 1000)
	f.SetCellValue("DISCOVERY", "A2", "New followers")
	f.SetCellValue("DISCOVERY", "B2", 50)

	// A FOLLOWERS sheet with a period-end total but no per-day table must
	// not replace the discovery value with a zero.
	mustSheet(t, f, "FOLLOWERS")
	f.SetCellValue("FOLLOWERS", "A1", "Total followers")
	f.SetCellValue("FOLLOWERS", "B1", 900)

	rec, err := Parse(workbookBytes(t, f), testOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.Followers == nil || rec.Followers.TotalFollowers != 900 {
		t.Fatalf("followers: %+v", rec.Followers)
	}
	if rec.Discovery == nil || rec.Discovery.NewFollowers == nil || *rec.Discovery.NewFollowers != 50 {
		t.Errorf("NewFollowers = %v, expected the discovery-parsed 50", rec.Discovery.NewFollowers)
	}
}

func TestParseEmptyWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rec, err := Parse(workbookBytes(t, f), testOptions())
	if err != nil {
		t.Fatalf("a single-sheet workbook must not fail: %v", err)
	}
	if rec.Discovery != nil || rec.TopPosts != nil {
		t.Errorf("expected an all-nil record, got %+v", rec)
	}
}

func TestParseInvalidBytes(t *testing.T) {
	_, err := Parse([]byte("definitely not a workbook"), testOptions())
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestParseContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseContext(ctx, fullExport(t), testOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
