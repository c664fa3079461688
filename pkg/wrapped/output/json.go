// Package output serializes analytics records to JSON.
package output

import (
	"encoding/json"

	"github.com/wrappedin/wrapped-go/pkg/wrapped/models"
)

// ToJSON serializes an AnalyticsRecord to JSON.
func ToJSON(rec *models.AnalyticsRecord, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(rec, "", "  ")
	}
	return json.Marshal(rec)
}

// DiscoveryToJSON serializes just the discovery subset, used by the
// summary endpoint and the share-card generator.
func DiscoveryToJSON(d *models.Discovery, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(d, "", "  ")
	}
	return json.Marshal(d)
}
