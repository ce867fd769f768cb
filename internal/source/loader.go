package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/savegress/vaxtriage/pkg/models"
)

// Load reads the record collection from a JSON extract file. It is called
// once at startup; any failure here is fatal for the dashboard since no
// display can occur without data.
func Load(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record source: %w", err)
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse record source: %w", err)
	}

	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.DocID == "" {
			return nil, fmt.Errorf("record %d has no doc_id", i)
		}
		if seen[r.DocID] {
			return nil, fmt.Errorf("duplicate doc_id %q", r.DocID)
		}
		seen[r.DocID] = true
	}

	return records, nil
}

// DateSpan returns the earliest and latest administered dates in the
// collection, skipping records without one. Both are empty when no record
// carries a date.
func DateSpan(records []models.Record) (earliest, latest string) {
	for _, r := range records {
		if r.AdministeredDate == "" {
			continue
		}
		if earliest == "" || r.AdministeredDate < earliest {
			earliest = r.AdministeredDate
		}
		if latest == "" || r.AdministeredDate > latest {
			latest = r.AdministeredDate
		}
	}
	return earliest, latest
}
