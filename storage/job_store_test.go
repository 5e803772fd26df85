package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/gms/match"
	"github.com/garagehq/gms/storage/testutil"
)

func seedJobFixtures(t *testing.T, store *Store) (jobID int64) {
	t.Helper()
	ctx := context.Background()

	customerID, err := store.InsertCustomer(ctx, match.Customer{
		Name:   "Jane Smith",
		Mobile: "07911123456",
	})
	require.NoError(t, err)

	vehicleID, err := store.InsertVehicle(ctx, match.Vehicle{
		Registration: "AB12CDE",
		Make:         "Ford",
		Model:        "Focus",
		CustomerID:   &customerID,
	})
	require.NoError(t, err)

	jobID, err = store.InsertJob(ctx, match.Job{
		JobNumber:          "J-1042",
		Description:        "Front brake pads and discs",
		Status:             "open",
		CustomerID:         &customerID,
		VehicleID:          &vehicleID,
		AssignedTechnician: "Dave",
	})
	require.NoError(t, err)
	return jobID
}

func TestSearchJobsByJobNumber(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	store := NewStore(conn, nil)
	jobID := seedJobFixtures(t, store)

	results, err := store.SearchJobs(context.Background(), "J-1042", 0)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, jobID, results[0].ID)
}

func TestSearchJobsByDescription(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	store := NewStore(conn, nil)
	jobID := seedJobFixtures(t, store)

	results, err := store.SearchJobs(context.Background(), "brake pads", 0)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, jobID, results[0].ID)
}

func TestSearchJobsByVehicleRegistration(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	store := NewStore(conn, nil)
	jobID := seedJobFixtures(t, store)

	// Registration is denormalized onto the job row for scoring
	results, err := store.SearchJobs(context.Background(), "ab12 cde", 0)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, jobID, results[0].ID)
	assert.Equal(t, "AB12CDE", results[0].VehicleRegistration)
}

func TestSearchJobsShortQuery(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	store := NewStore(conn, nil)
	seedJobFixtures(t, store)

	results, err := store.SearchJobs(context.Background(), "j", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
