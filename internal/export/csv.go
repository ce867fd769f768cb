package export

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/savegress/vaxtriage/internal/quality"
	"github.com/savegress/vaxtriage/pkg/models"
)

// ErrNoRows is returned when an export is requested for an empty
// collection. It is a user-visible refusal, not a failure.
var ErrNoRows = errors.New("no rows to export")

// Header is the fixed column order of the export file.
var Header = []string{
	"doc_id", "patient_id", "status", "age", "race", "ethnicity",
	"mobile", "email", "administered_date", "vaccine_name", "vfc_status",
	"funding_source", "quantity", "units", "ndc", "lot_number",
	"expiration_date", "readiness_score", "reviewed", "reviewed_timestamp",
}

// ReviewLookup supplies the disposition columns for one record id.
type ReviewLookup func(docID string) (reviewed bool, reviewedAt *time.Time)

// WriteCSV serializes the date-filtered collection, one row per record in
// input order. Reviewed is written as "1"/"0" and the timestamp as
// RFC3339 or empty. encoding/csv wraps any field containing a comma,
// quote or newline in double quotes with internal quotes doubled.
func WriteCSV(w io.Writer, records []models.Record, lookup ReviewLookup) error {
	if len(records) == 0 {
		return ErrNoRows
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, r := range records {
		reviewed, reviewedAt := false, (*time.Time)(nil)
		if lookup != nil {
			reviewed, reviewedAt = lookup(r.DocID)
		}

		reviewedCol := "0"
		if reviewed {
			reviewedCol = "1"
		}
		timestampCol := ""
		if reviewedAt != nil {
			timestampCol = reviewedAt.Format(time.RFC3339)
		}

		row := []string{
			r.DocID, r.PatientID, r.Status, r.Age, r.Race, r.Ethnicity,
			r.Mobile, r.Email, r.AdministeredDate, r.VaccineName, r.VFCStatus,
			r.FundingSource, r.Quantity, r.Units, r.NDC, r.LotNumber,
			r.ExpirationDate, strconv.Itoa(quality.ComputeReadiness(r)),
			reviewedCol, timestampCol,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
