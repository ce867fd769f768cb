package quality

import (
	"github.com/savegress/vaxtriage/pkg/models"
)

// advisoryChecks is the fixed scan order for the guidance panel: program
// fields first, then demographics, then contact. Each check is
// independent; one advisory is emitted per missing field.
var advisoryChecks = []struct {
	field string
	value func(models.Record) string
}{
	{"vfc_status", func(r models.Record) string { return r.VFCStatus }},
	{"funding_source", func(r models.Record) string { return r.FundingSource }},
	{"race", func(r models.Record) string { return r.Race }},
	{"ethnicity", func(r models.Record) string { return r.Ethnicity }},
	{"mobile", func(r models.Record) string { return r.Mobile }},
	{"email", func(r models.Record) string { return r.Email }},
}

// Advisories enumerates the actionable documentation gaps for a record,
// in scan order. An empty result means the record has no gaps the
// guidance panel reports on.
func Advisories(r models.Record) []models.Advisory {
	var out []models.Advisory
	for _, c := range advisoryChecks {
		if !isEmpty(c.value(r)) {
			continue
		}
		g, ok := Guidance(c.field)
		if !ok {
			continue
		}
		out = append(out, models.Advisory{
			Field:    g.Field,
			Label:    g.Label,
			Severity: g.Severity,
			Impact:   g.Impact,
			Fix:      g.Fix,
		})
	}
	return out
}

// NoGapsMessage is the sentinel shown when a record has no advisories.
const NoGapsMessage = "no documentation gaps"
