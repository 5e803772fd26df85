// Package match implements the entity-matching and deduplication engine
// used by search and by the GA4 CSV importer. It scores how likely two
// superficially different records refer to the same real-world customer,
// vehicle or job.
//
// The engine is stateless and pure: it owns no storage, performs no I/O,
// and every function is total over well-formed inputs. Callers load a
// working set of records, score them in memory, and discard them.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText canonicalizes free text for comparison: lowercase,
// diacritics stripped (NFD decomposition, combining marks dropped),
// whitespace runs collapsed to single spaces, trimmed.
// Idempotent; returns "" for empty or whitespace-only input.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}

	// Transformers are stateful, so build a fresh chain per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		// Malformed UTF-8: fall back to the raw string rather than fail
		stripped = s
	}

	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// NormalizePhone reduces a phone number to its canonical UK digit form.
// Every non-digit is stripped; the international prefixes "44" and "0044"
// are rewritten to a single leading "0".
//
// Only UK-style prefixes are handled. Other country codes pass through as
// bare digit strings, which can make unrelated international numbers
// compare equal on a shared suffix. Deliberate: the customer base is
// UK-only and GA4 exports carry mixed +44/0044/0 forms of the same number.
func NormalizePhone(s string) string {
	if s == "" {
		return ""
	}

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case strings.HasPrefix(d, "0044"):
		return "0" + d[4:]
	case strings.HasPrefix(d, "44"):
		return "0" + d[2:]
	}
	return d
}

// NormalizeRegistration canonicalizes a vehicle registration: uppercase
// with everything outside [A-Z0-9] stripped, so "AB12 CDE", "ab12-cde"
// and "AB12CDE" compare equal.
func NormalizeRegistration(s string) string {
	if s == "" {
		return ""
	}

	var out strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// NormalizePostcode canonicalizes a postal code: uppercase, all
// whitespace removed.
func NormalizePostcode(s string) string {
	if s == "" {
		return ""
	}

	var out strings.Builder
	for _, r := range strings.ToUpper(s) {
		if !unicode.IsSpace(r) {
			out.WriteRune(r)
		}
	}
	return out.String()
}
