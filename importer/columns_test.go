package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessColumnsExact(t *testing.T) {
	headers := []string{"Account Number", "Name", "Mobile", "Email", "Postcode"}

	cols := GuessColumns(headers, customerColumnAliases, 2)

	assert.Equal(t, 0, cols["account_number"])
	assert.Equal(t, 1, cols["name"])
	assert.Equal(t, 2, cols["mobile"])
	assert.Equal(t, 3, cols["email"])
	assert.Equal(t, 4, cols["postcode"])
}

func TestGuessColumnsSeparatorFolding(t *testing.T) {
	headers := []string{"Customer_Name", "MOBILE-NUMBER", "e-mail"}

	cols := GuessColumns(headers, customerColumnAliases, 2)

	assert.Equal(t, 0, cols["name"])
	assert.Equal(t, 1, cols["mobile"])
	assert.Equal(t, 2, cols["email"])
}

func TestGuessColumnsFuzzy(t *testing.T) {
	// Typos within the edit-distance budget still resolve
	headers := []string{"Registraton", "Moblie", "Postcod"}

	regCols := GuessColumns(headers, vehicleColumnAliases, 2)
	assert.Equal(t, 0, regCols["registration"])

	custCols := GuessColumns(headers, customerColumnAliases, 2)
	assert.Equal(t, 1, custCols["mobile"])
	assert.Equal(t, 2, custCols["postcode"])
}

func TestGuessColumnsBeyondDistance(t *testing.T) {
	headers := []string{"Notes", "Internal Ref"}

	cols := GuessColumns(headers, customerColumnAliases, 2)

	_, hasName := cols["name"]
	_, hasMobile := cols["mobile"]
	assert.False(t, hasName)
	assert.False(t, hasMobile)
}
