package models

import (
	"fmt"
	"time"
)

// Record is a single immunization administration event as received from
// the registry extract. Records are immutable once loaded; all assessment
// is derived, never written back.
type Record struct {
	DocID            string `json:"doc_id"`
	PatientID        string `json:"patient_id"`
	Status           string `json:"status"`
	Age              string `json:"age"`
	Race             string `json:"race"`
	Ethnicity        string `json:"ethnicity"`
	Mobile           string `json:"mobile"`
	Email            string `json:"email"`
	AdministeredDate string `json:"administered_date"`
	VaccineName      string `json:"vaccine_name"`
	VFCStatus        string `json:"vfc_status"`
	FundingSource    string `json:"funding_source"`
	Quantity         string `json:"quantity"`
	Units            string `json:"units"`
	NDC              string `json:"ndc"`
	LotNumber        string `json:"lot_number"`
	ExpirationDate   string `json:"expiration_date"`
}

// Severity is the categorical triage tier of a record.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
	SeverityClean  Severity = "clean"
)

// RiskClass is the structural completeness tier of a record. RiskNone
// means no usability field is missing.
type RiskClass string

const (
	RiskHigh   RiskClass = "high"
	RiskMedium RiskClass = "medium"
	RiskLow    RiskClass = "low"
	RiskNone   RiskClass = ""
)

// GuidanceEntry describes the documentation impact of one missing field
// and how to remediate it.
type GuidanceEntry struct {
	Field    string   `json:"field"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
	Impact   string   `json:"impact"`
	Fix      string   `json:"fix"`
}

// Advisory is one actionable documentation gap surfaced for a record.
type Advisory struct {
	Field    string   `json:"field"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
	Impact   string   `json:"impact"`
	Fix      string   `json:"fix"`
}

// ReviewState is the durable reviewer disposition for one record, joined
// to the record collection by DocID.
type ReviewState struct {
	DocID      string     `json:"doc_id"`
	Reviewed   bool       `json:"reviewed"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

// FieldSelector narrows the record set to records missing a particular
// kind of documentation.
type FieldSelector string

const (
	SelectorAll        FieldSelector = "all"
	SelectorIncomplete FieldSelector = "incomplete"
	SelectorComplete   FieldSelector = "complete"
	SelectorVFC        FieldSelector = "vfc"
	SelectorFunding    FieldSelector = "funding"
	SelectorRace       FieldSelector = "race"
	SelectorEthnicity  FieldSelector = "ethnicity"
	SelectorContact    FieldSelector = "contact"
)

// Valid reports whether the selector is one of the declared values.
func (s FieldSelector) Valid() bool {
	switch s {
	case SelectorAll, SelectorIncomplete, SelectorComplete, SelectorVFC,
		SelectorFunding, SelectorRace, SelectorEthnicity, SelectorContact:
		return true
	}
	return false
}

// FilterState is the transient display-narrowing state. It is a plain
// value; the engine re-derives the display collection from it rather than
// mutating any shared view.
type FilterState struct {
	From           string        `json:"from"`
	To             string        `json:"to"`
	MissingField   FieldSelector `json:"missing_field"`
	ActiveSeverity Severity      `json:"active_severity,omitempty"`
	HideReviewed   bool          `json:"hide_reviewed"`
}

// Validate checks the enumerated members of the filter state. An absent
// date range is valid (it yields an empty display collection, not an
// error).
func (f FilterState) Validate() error {
	if f.MissingField != "" && !f.MissingField.Valid() {
		return fmt.Errorf("unknown missing-field selector %q", f.MissingField)
	}
	switch f.ActiveSeverity {
	case "", SeverityHigh, SeverityMedium, SeverityLow, SeverityClean:
	default:
		return fmt.Errorf("unknown severity %q", f.ActiveSeverity)
	}
	return nil
}

// Summary is the severity breakdown of the date-filtered collection.
type Summary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Clean  int `json:"clean"`
	Total  int `json:"total"`
}

// ClassifiedRecord is a record joined with everything the renderer needs
// to draw one row.
type ClassifiedRecord struct {
	Record
	Severity   Severity   `json:"severity"`
	Risk       RiskClass  `json:"risk"`
	Readiness  int        `json:"readiness_score"`
	Reviewed   bool       `json:"reviewed"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}
