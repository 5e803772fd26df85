package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCustomerMobileLink(t *testing.T) {
	m := NewMatcher()

	// CSV candidate with international prefix vs stored local form
	candidate := Customer{Name: "J. Smith", Mobile: "+447911123456"}
	existing := Customer{ID: 1, Name: "Jane Smith", Mobile: "07911123456"}

	score := m.MatchCustomer(candidate, existing)
	assert.GreaterOrEqual(t, score, DefaultCustomerLinkThreshold)
}

func TestMatchCustomerCrossPhoneFields(t *testing.T) {
	m := NewMatcher()

	// Landline recorded as mobile in the legacy export still links
	candidate := Customer{Phone: "0044 20 7946 0123"}
	existing := Customer{ID: 2, Mobile: "02079460123"}

	score := m.MatchCustomer(candidate, existing)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestMatchCustomerNameGate(t *testing.T) {
	m := NewMatcher()

	// Similar-but-gated name alone is not enough: similarity must exceed
	// 0.8 to contribute, and even then 0.6 weight stays below threshold
	candidate := Customer{Name: "Jane Smith"}
	existing := Customer{ID: 3, Name: "Jane Smyth"}

	score := m.MatchCustomer(candidate, existing)
	assert.Less(t, score, DefaultCustomerLinkThreshold)
}

func TestMatchCustomerEmailGate(t *testing.T) {
	m := NewMatcher()

	exact := m.MatchCustomer(
		Customer{Email: "jane@example.com"},
		Customer{ID: 4, Email: "Jane@Example.com"},
	)
	assert.InDelta(t, 0.8, exact, 1e-9)

	// A different email is gated out entirely
	near := m.MatchCustomer(
		Customer{Email: "jane@example.com"},
		Customer{ID: 4, Email: "bob@other.org"},
	)
	assert.Equal(t, 0.0, near)
}

func TestMatchCustomerAccountNumber(t *testing.T) {
	m := NewMatcher()

	score := m.MatchCustomer(
		Customer{AccountNumber: "GA-00123"},
		Customer{ID: 5, AccountNumber: "ga-00123"},
	)
	assert.InDelta(t, 0.9, score, 1e-9)
}

func TestMatchVehicleRegistrationGate(t *testing.T) {
	m := NewMatcher()

	// Identical after normalization: passes the 0.95 gate at full score
	same := m.MatchVehicle(
		Vehicle{Registration: "AB12 CDE"},
		Vehicle{ID: 1, Registration: "ab12cde"},
	)
	assert.GreaterOrEqual(t, same, DefaultVehicleLinkThreshold)

	// One character off is ~86% raw similarity: below the 0.95 gate the
	// registration contributes nothing, even though generic text
	// similarity would clear a 0.3 search floor
	near := m.MatchVehicle(
		Vehicle{Registration: "AB12CDE"},
		Vehicle{ID: 2, Registration: "AB12CDF"},
	)
	assert.Less(t, near, DefaultVehicleLinkThreshold)
	assert.Greater(t, Similarity("AB12CDE", "AB12CDF", true), 0.3)
}

func TestMatchVehicleCorroborationAloneInsufficient(t *testing.T) {
	m := NewMatcher()

	// Same make and model with different registrations must never link
	score := m.MatchVehicle(
		Vehicle{Registration: "AB12CDE", Make: "Ford", Model: "Focus"},
		Vehicle{ID: 3, Registration: "ZZ99XXX", Make: "Ford", Model: "Focus"},
	)
	assert.InDelta(t, corroborationWeight, score, 1e-9)
	assert.Less(t, score, DefaultVehicleLinkThreshold)
}

func TestRankCustomerLinksEndToEnd(t *testing.T) {
	m := NewMatcher()

	existing := []Customer{
		{ID: 1, Name: "Jane Smith", Mobile: "07911123456"},
		{ID: 2, Name: "John Jones", Mobile: "07000000000"},
	}

	candidate := Customer{Name: "J. Smith", Mobile: "+447911123456"}

	matches := m.RankCustomerLinks(candidate, existing, DefaultCustomerLinkThreshold)

	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].ID)
	assert.GreaterOrEqual(t, matches[0].Score, 0.8)
}

func TestRankCustomerLinksSortedDescending(t *testing.T) {
	m := NewMatcher()

	existing := []Customer{
		{ID: 1, Email: "jane@example.com"},                        // email only: 0.8
		{ID: 2, Mobile: "07911123456"},                            // mobile: 1.0
		{ID: 3, Mobile: "07911123456", Email: "jane@example.com"}, // mobile wins: 1.0
	}

	candidate := Customer{Mobile: "07911123456", Email: "jane@example.com"}

	matches := m.RankCustomerLinks(candidate, existing, DefaultCustomerLinkThreshold)

	require.Len(t, matches, 3)
	assert.Equal(t, int64(2), matches[0].ID, "equal top scores tie-break by id")
	assert.Equal(t, int64(3), matches[1].ID)
	assert.Equal(t, int64(1), matches[2].ID)
}

func TestRankVehicleLinksEmptyOnNoMatch(t *testing.T) {
	m := NewMatcher()

	existing := []Vehicle{
		{ID: 1, Registration: "AB12CDF"},
	}

	matches := m.RankVehicleLinks(Vehicle{Registration: "AB12CDE"}, existing, DefaultVehicleLinkThreshold)
	assert.Empty(t, matches)
}
