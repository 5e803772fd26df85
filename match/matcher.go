package match

import (
	"math"
	"sort"
)

// Matcher scores candidate records against free-text queries. The zero
// value is not usable; construct with NewMatcher.
type Matcher struct {
	weights Weights
}

// NewMatcher returns a matcher using the production weight table.
func NewMatcher() *Matcher {
	return &Matcher{weights: DefaultWeights()}
}

// NewMatcherWithWeights returns a matcher with a custom weight table.
// Missing field classes score zero.
func NewMatcherWithWeights(w Weights) *Matcher {
	return &Matcher{weights: w}
}

// ScoreCustomer produces the overall match score for a customer against a
// query: the maximum weighted per-field similarity. A record matches if
// it is an excellent match on any one discriminative field, even if weak
// everywhere else - a perfect mobile match surfaces the record even when
// the name field scores zero (nickname vs legal name).
func (m *Matcher) ScoreCustomer(c Customer, q Query) float64 {
	var best float64

	// Phone fields: exact-after-normalization only, and the near-exact
	// gate must clear before the weight applies at all.
	if s := phoneSimilarity(c.Mobile, q.Phone); s > phoneGate {
		best = math.Max(best, s*m.weights[FieldMobilePhone])
	}
	if s := phoneSimilarity(c.Phone, q.Phone); s > phoneGate {
		best = math.Max(best, s*m.weights[FieldMobilePhone])
	}

	if s := Similarity(c.AccountNumber, q.Raw, false); s > 0 {
		best = math.Max(best, s*m.weights[FieldAccount])
	}

	if s := exactSimilarity(NormalizePostcode(c.Postcode), q.Postcode); s > 0 {
		best = math.Max(best, s*m.weights[FieldPostcode])
	}

	if s := Similarity(c.Name, q.Raw, true); s > 0 {
		best = math.Max(best, s*m.weights[FieldName])
	}
	if s := Similarity(c.Email, q.Raw, true); s > 0 {
		best = math.Max(best, s*m.weights[FieldEmail])
	}

	return best
}

// ScoreVehicle scores a vehicle against a query. Registration is strict;
// make, model and the denormalized customer name are fuzzy text fields.
func (m *Matcher) ScoreVehicle(v Vehicle, q Query) float64 {
	var best float64

	if s := exactSimilarity(NormalizeRegistration(v.Registration), q.Registration); s > 0 {
		best = math.Max(best, s*m.weights[FieldRegistration])
	}

	if s := phoneSimilarity(v.CustomerMobile, q.Phone); s > phoneGate {
		best = math.Max(best, s*m.weights[FieldMobilePhone])
	}

	if s := Similarity(v.CustomerAccount, q.Raw, false); s > 0 {
		best = math.Max(best, s*m.weights[FieldAccount])
	}

	if s := Similarity(v.Make, q.Raw, true); s > 0 {
		best = math.Max(best, s*m.weights[FieldName])
	}
	if s := Similarity(v.Model, q.Raw, true); s > 0 {
		best = math.Max(best, s*m.weights[FieldName])
	}
	if s := Similarity(v.CustomerName, q.Raw, true); s > 0 {
		best = math.Max(best, s*m.weights[FieldName])
	}

	return best
}

// ScoreJob scores a job against a query. The job number behaves like an
// account number: business-assigned and unique-ish, matched strictly.
func (m *Matcher) ScoreJob(j Job, q Query) float64 {
	var best float64

	if s := Similarity(j.JobNumber, q.Raw, false); s > 0 {
		best = math.Max(best, s*m.weights[FieldAccount])
	}

	if s := exactSimilarity(NormalizeRegistration(j.VehicleRegistration), q.Registration); s > 0 {
		best = math.Max(best, s*m.weights[FieldRegistration])
	}

	if s := phoneSimilarity(j.CustomerMobile, q.Phone); s > phoneGate {
		best = math.Max(best, s*m.weights[FieldMobilePhone])
	}

	if s := Similarity(j.Description, q.Raw, true); s > 0 {
		best = math.Max(best, s*m.weights[FieldName])
	}
	if s := Similarity(j.CustomerName, q.Raw, true); s > 0 {
		best = math.Max(best, s*m.weights[FieldName])
	}
	if s := Similarity(j.AssignedTechnician, q.Raw, true); s > 0 {
		best = math.Max(best, s*m.weights[FieldName])
	}

	return best
}

// RankCustomers scores candidates, drops everything at or below minScore,
// and returns the survivors sorted by score descending. Equal scores tie-
// break by id ascending so ranking is deterministic regardless of storage
// row order.
func (m *Matcher) RankCustomers(candidates []Customer, q Query, minScore float64, limit int) []CustomerResult {
	results := make([]CustomerResult, 0, len(candidates))
	for _, c := range candidates {
		score := m.ScoreCustomer(c, q)
		if score > minScore {
			results = append(results, CustomerResult{Customer: c, SearchScore: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].SearchScore != results[j].SearchScore {
			return results[i].SearchScore > results[j].SearchScore
		}
		return results[i].ID < results[j].ID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// RankVehicles is RankCustomers for vehicles.
func (m *Matcher) RankVehicles(candidates []Vehicle, q Query, minScore float64, limit int) []VehicleResult {
	results := make([]VehicleResult, 0, len(candidates))
	for _, v := range candidates {
		score := m.ScoreVehicle(v, q)
		if score > minScore {
			results = append(results, VehicleResult{Vehicle: v, SearchScore: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].SearchScore != results[j].SearchScore {
			return results[i].SearchScore > results[j].SearchScore
		}
		return results[i].ID < results[j].ID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// RankJobs is RankCustomers for jobs.
func (m *Matcher) RankJobs(candidates []Job, q Query, minScore float64, limit int) []JobResult {
	results := make([]JobResult, 0, len(candidates))
	for _, j := range candidates {
		score := m.ScoreJob(j, q)
		if score > minScore {
			results = append(results, JobResult{Job: j, SearchScore: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].SearchScore != results[j].SearchScore {
			return results[i].SearchScore > results[j].SearchScore
		}
		return results[i].ID < results[j].ID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// phoneSimilarity compares two values in normalized digit form: 1.0 on
// exact match, otherwise 0.0. A partial digit overlap contributes
// nothing.
func phoneSimilarity(rawPhone, normalizedQuery string) float64 {
	if rawPhone == "" || normalizedQuery == "" {
		return 0.0
	}
	if NormalizePhone(rawPhone) == normalizedQuery {
		return 1.0
	}
	return 0.0
}

// exactSimilarity compares two already-normalized strings: 1.0 on exact
// non-empty equality, otherwise 0.0.
func exactSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}
	return 0.0
}
