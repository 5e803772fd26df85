package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/gms/match"
)

func TestSearchCustomersQueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT id, account_number").
		WillReturnError(assert.AnError)

	store := NewStore(conn, nil)
	_, err = store.SearchCustomers(context.Background(), "jane smith", 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query customers")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertCustomerExecError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("INSERT INTO customers").
		WillReturnError(assert.AnError)

	store := NewStore(conn, nil)
	_, err = store.InsertCustomer(context.Background(), match.Customer{Name: "Jane"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert customer")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountsQueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnError(assert.AnError)

	store := NewStore(conn, nil)
	_, err = store.Counts(context.Background())
	require.Error(t, err)
}
