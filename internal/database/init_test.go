package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	client, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer client.Close()

	mock.ExpectExec("CREATE DATABASE IF NOT EXISTS hook").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("USE hook").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS fee_events").WillReturnResult(sqlmock.NewResult(0, 0))

	database, err := NewDatabase(client, "hook")
	require.NoError(t, err)
	applied, err := database.Migrate()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_fee_events.sql"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateFails(t *testing.T) {
	client, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer client.Close()

	mock.ExpectExec("CREATE DATABASE IF NOT EXISTS hook").WillReturnError(errors.New("denied"))

	database, err := NewDatabase(client, "hook")
	require.NoError(t, err)
	applied, err := database.Migrate()
	assert.ErrorContains(t, err, "denied")
	assert.Empty(t, applied)
}

func TestNewDatabaseRequiresName(t *testing.T) {
	_, err := NewDatabase(nil, "")
	assert.Error(t, err)
}

func TestOpenRejectsMalformedDSN(t *testing.T) {
	_, err := Open("root@tcp(127.0.0.1:3306)", "hook")
	assert.ErrorContains(t, err, "failed to connect to MySQL")
}
