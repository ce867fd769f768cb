package quality

import (
	"github.com/savegress/vaxtriage/pkg/models"
)

// weightedField is one deduction applied by the readiness scorer.
type weightedField struct {
	name   string
	weight int
	value  func(models.Record) string
}

// The seven weighted fields, heaviest first. Product identification
// dominates the score; contact fields barely move it.
var weightedFields = []weightedField{
	{"lot_number", 25, func(r models.Record) string { return r.LotNumber }},
	{"ndc", 25, func(r models.Record) string { return r.NDC }},
	{"expiration_date", 10, func(r models.Record) string { return r.ExpirationDate }},
	{"vfc_status", 15, func(r models.Record) string { return r.VFCStatus }},
	{"funding_source", 15, func(r models.Record) string { return r.FundingSource }},
	{"mobile", 5, func(r models.Record) string { return r.Mobile }},
	{"email", 5, func(r models.Record) string { return r.Email }},
}

const dateInversionPenalty = 15

// ComputeReadiness scores a record's documentation completeness on a
// 0–100 scale. Each empty weighted field subtracts its weight; a record
// whose expiration date precedes its administration date loses a further
// 15 points. Date order is decided by string comparison, which is correct
// for the fixed YYYY-MM-DD form the registry emits and must stay that way
// for output parity.
func ComputeReadiness(r models.Record) int {
	score := 100
	for _, f := range weightedFields {
		if isEmpty(f.value(r)) {
			score -= f.weight
		}
	}
	if score < 0 {
		score = 0
	}
	if !isEmpty(r.AdministeredDate) && !isEmpty(r.ExpirationDate) &&
		r.ExpirationDate < r.AdministeredDate {
		score -= dateInversionPenalty
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// IsComplete reports whether all seven weighted fields are populated.
// This is a stricter gate than a clean severity tier: a record can be
// clean yet incomplete when a product field is missing.
func IsComplete(r models.Record) bool {
	for _, f := range weightedFields {
		if isEmpty(f.value(r)) {
			return false
		}
	}
	return true
}
