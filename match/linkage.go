package match

import (
	"math"
	"sort"
)

// Record linkage decides, during CSV import, whether a newly-parsed
// record refers to the same real entity as an existing stored record.
// It is stricter than search: every field carries its own contribution
// gate, and the overall thresholds are higher. Whether the top match is
// treated as authoritative or flagged for manual review is the caller's
// policy, not the engine's.

// MatchCustomer scores how likely candidate and existing describe the
// same real customer. Phones, email and postcode contribute only above
// near-exact similarity; names only above 0.8 plain similarity.
func (m *Matcher) MatchCustomer(candidate, existing Customer) float64 {
	var best float64

	candPhones := []string{candidate.Mobile, candidate.Phone}
	existPhones := []string{existing.Mobile, existing.Phone}
	for _, cp := range candPhones {
		for _, ep := range existPhones {
			if cp == "" || ep == "" {
				continue
			}
			if s := exactSimilarity(NormalizePhone(cp), NormalizePhone(ep)); s > linkPhoneGate {
				best = math.Max(best, s*m.weights[FieldMobilePhone])
			}
		}
	}

	if s := Similarity(candidate.AccountNumber, existing.AccountNumber, false); s > 0 {
		best = math.Max(best, s*m.weights[FieldAccount])
	}

	if s := Similarity(candidate.Email, existing.Email, true); s > linkEmailGate {
		best = math.Max(best, s*m.weights[FieldEmail])
	}

	if s := Similarity(NormalizePostcode(candidate.Postcode), NormalizePostcode(existing.Postcode), true); s > linkPostcodeGate {
		best = math.Max(best, s*m.weights[FieldPostcode])
	}

	if s := Similarity(candidate.Name, existing.Name, true); s > linkNameGate {
		best = math.Max(best, s*m.weights[FieldName])
	}

	return best
}

// MatchVehicle scores how likely candidate and existing describe the same
// vehicle. Registration must be near-exact (>0.95 raw similarity) before
// it contributes; make and model together form a secondary corroborating
// signal at a flat weight, which on its own can never clear the vehicle
// linkage threshold.
func (m *Matcher) MatchVehicle(candidate, existing Vehicle) float64 {
	var best float64

	regSim := Similarity(
		NormalizeRegistration(candidate.Registration),
		NormalizeRegistration(existing.Registration),
		true,
	)
	if regSim > linkRegGate {
		best = math.Max(best, regSim*m.weights[FieldRegistration])
	}

	makeSim := Similarity(candidate.Make, existing.Make, true)
	modelSim := Similarity(candidate.Model, existing.Model, true)
	if makeSim > linkMakeGate && modelSim > linkModelGate {
		corroboration := (makeSim + modelSim) / 2 * corroborationWeight
		best = math.Max(best, corroboration)
	}

	return best
}

// RankCustomerLinks scores candidate against every existing customer and
// returns all matches at or above threshold as (id, score) pairs sorted
// by score descending, id ascending on ties.
func (m *Matcher) RankCustomerLinks(candidate Customer, existing []Customer, threshold float64) []LinkMatch {
	var matches []LinkMatch
	for _, e := range existing {
		if score := m.MatchCustomer(candidate, e); score >= threshold {
			matches = append(matches, LinkMatch{ID: e.ID, Score: score})
		}
	}
	sortLinkMatches(matches)
	return matches
}

// RankVehicleLinks is RankCustomerLinks for vehicles.
func (m *Matcher) RankVehicleLinks(candidate Vehicle, existing []Vehicle, threshold float64) []LinkMatch {
	var matches []LinkMatch
	for _, e := range existing {
		if score := m.MatchVehicle(candidate, e); score >= threshold {
			matches = append(matches, LinkMatch{ID: e.ID, Score: score})
		}
	}
	sortLinkMatches(matches)
	return matches
}

func sortLinkMatches(matches []LinkMatch) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
}
