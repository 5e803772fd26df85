package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/gms/match"
	"github.com/garagehq/gms/storage"
	"github.com/garagehq/gms/storage/testutil"
)

func newTestImporter(t *testing.T) (*Importer, *storage.Store) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	store := storage.NewStore(conn, nil)
	return New(store, nil), store
}

func TestImportCustomersTriage(t *testing.T) {
	imp, store := newTestImporter(t)
	ctx := context.Background()

	janeID, err := store.InsertCustomer(ctx, match.Customer{
		Name:   "Jane Smith",
		Mobile: "07911123456",
		Email:  "jane@example.com",
	})
	require.NoError(t, err)

	csvData := strings.Join([]string{
		"Name,Mobile,Email",
		// same mobile as the stored customer: decisive, auto-link
		"J Smith,+44 7911 123456,",
		// same email but different name and no mobile: match exists but
		// is not decisive, goes to review
		"Janet Smythe,,jane@example.com",
		// nothing in common: new customer
		"Bob Jones,07700900123,bob@other.org",
		// blank row: skipped
		",,",
	}, "\n")

	report, err := imp.ImportCustomers(ctx, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 4, report.Rows)
	assert.Equal(t, 1, report.Linked)
	assert.Equal(t, 1, report.Review)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.NotEmpty(t, report.BatchID)

	// The review entry says which row, who it claims to be, and what it
	// plausibly matches
	require.Len(t, report.ReviewRows, 1)
	review := report.ReviewRows[0]
	assert.Equal(t, 2, review.Row)
	assert.Equal(t, "Janet Smythe", review.Identity)
	assert.Equal(t, janeID, review.MatchID)
	assert.InDelta(t, 0.8, review.Score, 0.001)

	// The created row is findable afterwards
	results, err := store.SearchCustomers(ctx, "07700900123", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bob Jones", results[0].Name)
}

func TestImportCustomersDryRun(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })
	store := storage.NewStore(conn, nil)
	imp := NewWithOptions(store, nil, Options{DryRun: true})

	csvData := "Name,Mobile\nBob Jones,07700900123\n"

	report, err := imp.ImportCustomers(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	stats, err := store.Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Customers)
}

func TestImportCustomersUnrecognizedHeader(t *testing.T) {
	imp, _ := newTestImporter(t)

	csvData := "Notes,Internal Ref\nfoo,bar\n"

	_, err := imp.ImportCustomers(context.Background(), strings.NewReader(csvData))
	assert.Error(t, err)
}

func TestImportVehiclesTriage(t *testing.T) {
	imp, store := newTestImporter(t)
	ctx := context.Background()

	_, err := store.InsertCustomer(ctx, match.Customer{
		Name:   "Jane Smith",
		Mobile: "07911123456",
	})
	require.NoError(t, err)

	_, err = store.InsertVehicle(ctx, match.Vehicle{
		Registration: "AB12CDE",
		Make:         "Ford",
		Model:        "Focus",
	})
	require.NoError(t, err)

	csvData := strings.Join([]string{
		"Reg,Make,Model,Year,Colour,Owner Mobile",
		// same registration modulo spacing: auto-link
		"AB12 CDE,Ford,Focus,2018,Blue,",
		// new vehicle whose owner mobile matches the stored customer
		"ZZ99 XXX,Vauxhall,Corsa,2020,Red,07911123456",
		// missing registration: skipped
		",Honda,Civic,2019,Black,",
	}, "\n")

	report, err := imp.ImportVehicles(ctx, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 1, report.Linked)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Skipped)

	// The created vehicle was attached to its owner
	results, err := store.SearchVehicles(ctx, "ZZ99XXX", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].CustomerID)
	assert.Equal(t, "Jane Smith", results[0].CustomerName)
	assert.Equal(t, 2020, results[0].Year)
}

func TestImportVehiclesRequiresRegistrationColumn(t *testing.T) {
	imp, _ := newTestImporter(t)

	csvData := "Make,Model\nFord,Focus\n"

	_, err := imp.ImportVehicles(context.Background(), strings.NewReader(csvData))
	assert.Error(t, err)
}
