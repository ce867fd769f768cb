package quality

import (
	"strings"

	"github.com/savegress/vaxtriage/pkg/models"
)

// isBlank reports whether a value is absent for structural purposes: the
// empty string or whitespace only.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isEmpty is the strict emptiness check used by the categorical tier, the
// scorer and the filter pipeline. Unlike isBlank it does not trim, so a
// whitespace-only value counts as present.
func isEmpty(s string) bool {
	return s == ""
}

// RiskClass returns the structural completeness tier of a record. The
// checks run top-down and the first match wins; RiskNone means every
// usability field is populated. This tier drives row highlighting and is
// intentionally independent of SeverityOf.
func RiskClass(r models.Record) models.RiskClass {
	if isBlank(r.VaccineName) || isBlank(r.Quantity) || isBlank(r.Units) ||
		isBlank(r.NDC) || isBlank(r.LotNumber) || isBlank(r.ExpirationDate) {
		return models.RiskHigh
	}
	if isBlank(r.VFCStatus) || isBlank(r.FundingSource) ||
		isBlank(r.Race) || isBlank(r.Ethnicity) {
		return models.RiskMedium
	}
	if isBlank(r.Mobile) || isBlank(r.Email) {
		return models.RiskLow
	}
	return models.RiskNone
}

// SeverityOf returns the categorical triage tier of a record: high only
// when both program fields are missing, medium on a demographic gap, low
// on a contact gap, clean otherwise. This tier drives the summary strip,
// filtering and advisories.
func SeverityOf(r models.Record) models.Severity {
	if isEmpty(r.VFCStatus) && isEmpty(r.FundingSource) {
		return models.SeverityHigh
	}
	if isEmpty(r.Race) || isEmpty(r.Ethnicity) {
		return models.SeverityMedium
	}
	if isEmpty(r.Mobile) || isEmpty(r.Email) {
		return models.SeverityLow
	}
	return models.SeverityClean
}
