package importer

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/garagehq/gms/match"
)

// Column alias tables for header guessing. Keys are the canonical field
// names used by the row builders; values are header spellings seen in
// real exports.
var (
	customerColumnAliases = map[string][]string{
		"account_number": {"account number", "account", "account no", "acc no", "customer number"},
		"name":           {"name", "customer name", "full name", "contact"},
		"phone":          {"phone", "telephone", "tel", "landline", "home phone"},
		"mobile":         {"mobile", "mobile number", "mobile phone", "cell"},
		"email":          {"email", "e mail", "email address"},
		"postcode":       {"postcode", "post code", "postal code", "zip"},
		"address":        {"address", "street address", "address line 1"},
	}

	vehicleColumnAliases = map[string][]string{
		"registration":    {"registration", "reg", "reg no", "vrm", "number plate", "plate"},
		"make":            {"make", "manufacturer"},
		"model":           {"model"},
		"year":            {"year", "year of manufacture", "reg year"},
		"color":           {"color", "colour"},
		"customer_name":   {"customer name", "owner", "owner name"},
		"customer_mobile": {"customer mobile", "owner mobile", "mobile"},
	}
)

// GuessColumns maps canonical field names to header indexes. Exact
// alias matches win; otherwise the closest header within maxDistance
// edits is taken. Fields with no plausible header are simply absent
// from the result.
func GuessColumns(headers []string, aliases map[string][]string, maxDistance int) map[string]int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	cols := make(map[string]int)
	for field, names := range aliases {
		best := -1
		bestDist := maxDistance + 1
		for i, header := range normalized {
			for _, name := range names {
				if header == name {
					best, bestDist = i, 0
					break
				}
				if d := levenshtein.ComputeDistance(header, name); d < bestDist {
					best, bestDist = i, d
				}
			}
			if bestDist == 0 {
				break
			}
		}
		if best >= 0 && bestDist <= maxDistance {
			cols[field] = best
		}
	}
	return cols
}

// normalizeHeader folds separator characters into spaces before the
// usual text normalization, so "Mobile_Number" and "mobile number"
// compare equal.
func normalizeHeader(header string) string {
	replacer := strings.NewReplacer("_", " ", "-", " ", ".", " ", "/", " ")
	return match.NormalizeText(replacer.Replace(header))
}
