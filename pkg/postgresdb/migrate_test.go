package postgresdb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Nzyazin/ledger/pkg/postgresdb"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS transactions").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, postgresdb.Migrate(context.Background(), db))

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS transactions").
		WillReturnError(errors.New("permission denied"))
	assert.ErrorContains(t, postgresdb.Migrate(context.Background(), db), "permission denied")

	assert.NoError(t, mock.ExpectationsWereMet())
}
