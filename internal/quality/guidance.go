package quality

import (
	"github.com/savegress/vaxtriage/pkg/models"
)

// guidanceTable maps a field name to its documentation impact and
// remediation text. Loaded once, constant for the process lifetime.
var guidanceTable = map[string]models.GuidanceEntry{
	"vfc_status": {
		Field:    "vfc_status",
		Label:    "VFC Eligibility Status",
		Severity: models.SeverityHigh,
		Impact:   "VFC-funded doses cannot be reconciled against program eligibility; the dose may be flagged in a VFC accountability audit.",
		Fix:      "Record the patient's VFC eligibility category (V01-V05) from the intake screening form.",
	},
	"funding_source": {
		Field:    "funding_source",
		Label:    "Funding Source",
		Severity: models.SeverityHigh,
		Impact:   "Public and private inventory cannot be separated, which breaks dose-level inventory reconciliation and program reporting.",
		Fix:      "Select the funding program (e.g. VXC50 public, VXC51 private) that supplied the administered dose.",
	},
	"race": {
		Field:    "race",
		Label:    "Race",
		Severity: models.SeverityMedium,
		Impact:   "Coverage equity reports undercount this patient; registries reject race-stratified exports with unknown values above threshold.",
		Fix:      "Capture the patient-reported race category during registration, including 'declined to answer' when applicable.",
	},
	"ethnicity": {
		Field:    "ethnicity",
		Label:    "Ethnicity",
		Severity: models.SeverityMedium,
		Impact:   "Coverage equity reports undercount this patient; ethnicity-stratified quality measures treat the record as unreportable.",
		Fix:      "Capture the patient-reported ethnicity (Hispanic/Latino or not) during registration, including 'declined to answer'.",
	},
	"mobile": {
		Field:    "mobile",
		Label:    "Mobile Phone",
		Severity: models.SeverityLow,
		Impact:   "The patient cannot receive SMS dose reminders or recall notices for this series.",
		Fix:      "Collect a mobile number at check-in and verify consent for text reminders.",
	},
	"email": {
		Field:    "email",
		Label:    "Email Address",
		Severity: models.SeverityLow,
		Impact:   "The patient cannot receive the electronic vaccination summary or follow-up scheduling links.",
		Fix:      "Collect an email address at check-in or mark the patient as declining electronic contact.",
	},
	"lot_number": {
		Field:    "lot_number",
		Label:    "Lot Number",
		Severity: models.SeverityHigh,
		Impact:   "The dose cannot be traced in a recall and inventory decrementing fails for the administered lot.",
		Fix:      "Scan the vial's 2D barcode or transcribe the lot number from the packaging before discarding it.",
	},
	"ndc": {
		Field:    "ndc",
		Label:    "NDC",
		Severity: models.SeverityHigh,
		Impact:   "The administered product cannot be identified unambiguously, blocking registry submission and barcode reconciliation.",
		Fix:      "Scan the unit-of-use barcode or look up the 11-digit NDC for the administered presentation.",
	},
	"expiration_date": {
		Field:    "expiration_date",
		Label:    "Expiration Date",
		Severity: models.SeverityMedium,
		Impact:   "Expired-dose administration checks cannot run, and beyond-use-date reporting excludes this dose.",
		Fix:      "Record the expiration date printed on the vial or carton for the administered lot.",
	},
}

// Guidance returns the guidance entry for a field name.
func Guidance(field string) (models.GuidanceEntry, bool) {
	e, ok := guidanceTable[field]
	return e, ok
}

// GuidanceTable returns all guidance entries in a stable field order.
func GuidanceTable() []models.GuidanceEntry {
	order := []string{
		"vfc_status", "funding_source", "race", "ethnicity",
		"mobile", "email", "lot_number", "ndc", "expiration_date",
	}
	entries := make([]models.GuidanceEntry, 0, len(order))
	for _, f := range order {
		entries = append(entries, guidanceTable[f])
	}
	return entries
}
