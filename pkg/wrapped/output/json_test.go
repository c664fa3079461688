package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/wrappedin/wrapped-go/pkg/wrapped/models"
)

func TestToJSONOmitsAbsentSections(t *testing.T) {
	rec := &models.AnalyticsRecord{
		Discovery: &models.Discovery{StartDate: "2025-01-01", EndDate: "2025-01-31"},
	}
	data, err := ToJSON(rec, false)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["discovery"]; !ok {
		t.Error("discovery missing from output")
	}
	for _, absent := range []string{"top_posts", "demographics", "daily_engagement", "followers"} {
		if _, ok := m[absent]; ok {
			t.Errorf("absent section %q serialized", absent)
		}
	}
}

func TestDiscoveryToJSONPretty(t *testing.T) {
	d := &models.Discovery{StartDate: "2025-01-01", EndDate: "2025-01-31", TotalImpressions: 10}
	data, err := DiscoveryToJSON(d, true)
	if err != nil {
		t.Fatalf("DiscoveryToJSON: %v", err)
	}
	if !bytes.Contains(data, []byte("\n")) {
		t.Error("pretty output not indented")
	}
	if !bytes.Contains(data, []byte(`"total_impressions": 10`)) {
		t.Errorf("unexpected payload: %s", data)
	}
}
