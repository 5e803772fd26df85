package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Bonus floors applied on top of the raw sequence ratio.
const (
	containmentFloor  = 0.8 // one normalized string contains the other
	wordOverlapWeight = 0.9 // Jaccard word overlap scaled by this
)

// Similarity computes a [0,1] similarity between two raw strings.
//
// Both inputs are text-normalized first. Exact normalized equality scores
// 1.0 regardless of fuzzy. With fuzzy false, anything inexact scores 0.0;
// that mode is used for phone, registration, postcode and account fields
// where partial similarity is meaningless or dangerous ("0207..." must
// never match "0208..." at 90%).
//
// With fuzzy true the score is the maximum of:
//   - the sequence ratio (longest-matching-blocks, difflib semantics)
//   - 0.8 if either normalized string contains the other (truncated names)
//   - 0.9 x Jaccard word overlap when any words are shared
//     (reordered names: "John Smith" vs "Smith, John")
//
// This is a pairwise heuristic, not a metric: no triangle inequality
// holds, so never build transitive clustering on top of it.
func Similarity(a, b string, fuzzy bool) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	na := NormalizeText(a)
	nb := NormalizeText(b)
	if na == "" || nb == "" {
		return 0.0
	}

	if na == nb {
		return 1.0
	}

	if !fuzzy {
		return 0.0
	}

	score := sequenceRatio(na, nb)

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		if score < containmentFloor {
			score = containmentFloor
		}
	}

	if overlap := wordOverlap(na, nb); overlap > score {
		score = overlap
	}

	return score
}

// sequenceRatio is the difflib SequenceMatcher ratio over characters:
// twice the number of matched characters over the total length.
func sequenceRatio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// wordOverlap returns the scaled Jaccard overlap of the word sets, or 0.0
// when no words are shared.
func wordOverlap(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	setA := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		setA[w] = true
	}
	setB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		setB[w] = true
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	if intersection == 0 {
		return 0.0
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union) * wordOverlapWeight
}
