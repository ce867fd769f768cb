package pipeline

import (
	"reflect"
	"testing"

	"github.com/savegress/vaxtriage/pkg/models"
)

func record(docID, date string) models.Record {
	return models.Record{
		DocID:            docID,
		PatientID:        "pat-" + docID,
		Race:             "2106-3",
		Ethnicity:        "2186-5",
		Mobile:           "555-0101",
		Email:            "guardian@example.com",
		AdministeredDate: date,
		VaccineName:      "DTaP",
		VFCStatus:        "V02",
		FundingSource:    "VXC50",
		Quantity:         "0.5",
		Units:            "mL",
		NDC:              "49281-0286-10",
		LotNumber:        "A1B2C3",
		ExpirationDate:   "2025-01-31",
	}
}

func docIDs(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.DocID
	}
	return out
}

func TestDateRange(t *testing.T) {
	records := []models.Record{
		record("a", "2024-01-01"),
		record("b", "2024-01-15"),
		record("c", "2024-02-01"),
	}

	got := DateRange(records, "2024-01-01", "2024-01-31")
	if want := []string{"a", "b"}; !reflect.DeepEqual(docIDs(got), want) {
		t.Errorf("got %v, want %v", docIDs(got), want)
	}
}

func TestDateRangeInclusiveBounds(t *testing.T) {
	records := []models.Record{record("a", "2024-01-10")}
	got := DateRange(records, "2024-01-10", "2024-01-10")
	if len(got) != 1 {
		t.Errorf("expected the boundary date to be kept, got %d records", len(got))
	}
}

func TestDateRangeMissingBound(t *testing.T) {
	records := []models.Record{record("a", "2024-01-10")}

	if got := DateRange(records, "", "2024-01-31"); len(got) != 0 {
		t.Errorf("expected empty result without a from bound, got %d", len(got))
	}
	if got := DateRange(records, "2024-01-01", ""); len(got) != 0 {
		t.Errorf("expected empty result without a to bound, got %d", len(got))
	}
}

func TestDateRangeInverted(t *testing.T) {
	records := []models.Record{
		record("a", "2024-01-07"),
		record("b", "2024-01-08"),
	}
	if got := DateRange(records, "2024-01-10", "2024-01-05"); len(got) != 0 {
		t.Errorf("expected empty result for an inverted range, got %d", len(got))
	}
}

func TestDisplaySelectorContact(t *testing.T) {
	var records []models.Record
	for i := 0; i < 10; i++ {
		r := record(string(rune('a'+i)), "2024-01-15")
		records = append(records, r)
	}
	// Three records lack email or mobile.
	records[1].Email = ""
	records[4].Mobile = ""
	records[8].Email = ""
	records[8].Mobile = ""

	fs := models.FilterState{
		From:         "2024-01-01",
		To:           "2024-01-31",
		MissingField: models.SelectorContact,
	}
	got := Display(records, fs, nil)
	if want := []string{"b", "e", "i"}; !reflect.DeepEqual(docIDs(got), want) {
		t.Errorf("got %v, want %v", docIDs(got), want)
	}
}

func TestDisplaySelectors(t *testing.T) {
	complete := record("complete", "2024-01-15")
	noVFC := record("novfc", "2024-01-15")
	noVFC.VFCStatus = ""
	noFunding := record("nofunding", "2024-01-15")
	noFunding.FundingSource = ""
	noRace := record("norace", "2024-01-15")
	noRace.Race = ""
	noEthnicity := record("noeth", "2024-01-15")
	noEthnicity.Ethnicity = ""

	records := []models.Record{complete, noVFC, noFunding, noRace, noEthnicity}

	tests := []struct {
		selector models.FieldSelector
		want     []string
	}{
		{models.SelectorAll, []string{"complete", "novfc", "nofunding", "norace", "noeth"}},
		{models.SelectorVFC, []string{"novfc"}},
		{models.SelectorFunding, []string{"nofunding"}},
		{models.SelectorRace, []string{"norace"}},
		{models.SelectorEthnicity, []string{"noeth"}},
		// Severity ignores a lone missing program field, so only the
		// demographic gaps count as incomplete here.
		{models.SelectorIncomplete, []string{"norace", "noeth"}},
		{models.SelectorComplete, []string{"complete", "novfc", "nofunding"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.selector), func(t *testing.T) {
			fs := models.FilterState{
				From:         "2024-01-01",
				To:           "2024-01-31",
				MissingField: tt.selector,
			}
			got := Display(records, fs, nil)
			if !reflect.DeepEqual(docIDs(got), tt.want) {
				t.Errorf("got %v, want %v", docIDs(got), tt.want)
			}
		})
	}
}

func TestDisplayActiveSeverity(t *testing.T) {
	clean := record("clean", "2024-01-15")
	low := record("low", "2024-01-15")
	low.Email = ""
	medium := record("medium", "2024-01-15")
	medium.Race = ""
	high := record("high", "2024-01-15")
	high.VFCStatus = ""
	high.FundingSource = ""

	records := []models.Record{clean, low, medium, high}

	fs := models.FilterState{
		From:           "2024-01-01",
		To:             "2024-01-31",
		ActiveSeverity: models.SeverityMedium,
	}
	got := Display(records, fs, nil)
	if want := []string{"medium"}; !reflect.DeepEqual(docIDs(got), want) {
		t.Errorf("got %v, want %v", docIDs(got), want)
	}
}

func TestDisplayHideReviewed(t *testing.T) {
	records := []models.Record{
		record("a", "2024-01-15"),
		record("b", "2024-01-15"),
		record("c", "2024-01-15"),
	}
	reviewed := map[string]bool{"b": true}

	fs := models.FilterState{
		From:         "2024-01-01",
		To:           "2024-01-31",
		HideReviewed: true,
	}
	got := Display(records, fs, func(docID string) bool { return reviewed[docID] })
	if want := []string{"a", "c"}; !reflect.DeepEqual(docIDs(got), want) {
		t.Errorf("got %v, want %v", docIDs(got), want)
	}
}

func TestDisplayIdempotent(t *testing.T) {
	records := []models.Record{
		record("a", "2024-01-10"),
		record("b", "2024-01-20"),
		record("c", "2024-02-01"),
	}
	records[0].Race = ""

	fs := models.FilterState{
		From:         "2024-01-01",
		To:           "2024-01-31",
		MissingField: models.SelectorIncomplete,
	}

	first := Display(records, fs, nil)
	second := Display(records, fs, nil)
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs with unchanged state produced different collections")
	}
}

func TestDisplayDoesNotMutateInput(t *testing.T) {
	records := []models.Record{
		record("a", "2024-01-10"),
		record("b", "2024-01-20"),
	}
	before := make([]models.Record, len(records))
	copy(before, records)

	fs := models.FilterState{From: "2024-01-01", To: "2024-01-31", MissingField: models.SelectorComplete}
	Display(records, fs, nil)

	if !reflect.DeepEqual(records, before) {
		t.Error("input collection was mutated")
	}
}

func TestSummarize(t *testing.T) {
	clean := record("clean", "2024-01-15")
	low := record("low", "2024-01-15")
	low.Mobile = ""
	medium := record("medium", "2024-01-15")
	medium.Ethnicity = ""
	high := record("high", "2024-01-15")
	high.VFCStatus = ""
	high.FundingSource = ""

	got := Summarize([]models.Record{clean, low, medium, high, clean})
	want := models.Summary{High: 1, Medium: 1, Low: 1, Clean: 2, Total: 5}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got != (models.Summary{}) {
		t.Errorf("expected zero summary, got %+v", got)
	}
}
