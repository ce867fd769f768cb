package pipeline

import (
	"github.com/savegress/vaxtriage/internal/quality"
	"github.com/savegress/vaxtriage/pkg/models"
)

// ReviewedLookup answers whether a record id is currently marked
// reviewed. The pipeline never caches the answer.
type ReviewedLookup func(docID string) bool

// DateRange keeps records administered inside [from, to]. Dates compare
// as strings, which orders correctly for the fixed YYYY-MM-DD form. An
// absent bound yields an empty result: unranged data is never shown.
func DateRange(records []models.Record, from, to string) []models.Record {
	if from == "" || to == "" {
		return nil
	}
	var out []models.Record
	for _, r := range records {
		if r.AdministeredDate >= from && r.AdministeredDate <= to {
			out = append(out, r)
		}
	}
	return out
}

// matchesSelector applies the missing-field selector to one record.
func matchesSelector(r models.Record, sel models.FieldSelector) bool {
	switch sel {
	case "", models.SelectorAll:
		return true
	case models.SelectorIncomplete:
		return quality.SeverityOf(r) != models.SeverityClean
	case models.SelectorComplete:
		return quality.SeverityOf(r) == models.SeverityClean
	case models.SelectorVFC:
		return r.VFCStatus == ""
	case models.SelectorFunding:
		return r.FundingSource == ""
	case models.SelectorRace:
		return r.Race == ""
	case models.SelectorEthnicity:
		return r.Ethnicity == ""
	case models.SelectorContact:
		return r.Email == "" || r.Mobile == ""
	}
	return true
}

// Display derives the display collection from the full record set: date
// range, then missing-field selector, then pinned severity, then the
// reviewed-visibility flag. The input order survives every stage and the
// input slice is never mutated.
func Display(records []models.Record, fs models.FilterState, reviewed ReviewedLookup) []models.Record {
	out := DateRange(records, fs.From, fs.To)

	if fs.MissingField != "" && fs.MissingField != models.SelectorAll {
		kept := out[:0:0]
		for _, r := range out {
			if matchesSelector(r, fs.MissingField) {
				kept = append(kept, r)
			}
		}
		out = kept
	}

	if fs.ActiveSeverity != "" {
		kept := out[:0:0]
		for _, r := range out {
			if quality.SeverityOf(r) == fs.ActiveSeverity {
				kept = append(kept, r)
			}
		}
		out = kept
	}

	if fs.HideReviewed && reviewed != nil {
		kept := out[:0:0]
		for _, r := range out {
			if !reviewed(r.DocID) {
				kept = append(kept, r)
			}
		}
		out = kept
	}

	return out
}

// Summarize counts records per severity tier. It is fed the date-filtered
// collection so the summary strip reflects the ranged set, not the
// further-narrowed display.
func Summarize(records []models.Record) models.Summary {
	var s models.Summary
	for _, r := range records {
		switch quality.SeverityOf(r) {
		case models.SeverityHigh:
			s.High++
		case models.SeverityMedium:
			s.Medium++
		case models.SeverityLow:
			s.Low++
		case models.SeverityClean:
			s.Clean++
		}
		s.Total++
	}
	return s
}
