package migration

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"V1__init.sql":        {Data: []byte("CREATE TABLE demo (id INT);")},
		"V2__add_name.sql":    {Data: []byte("ALTER TABLE demo ADD COLUMN name TEXT;")},
		"README.md":           {Data: []byte("ignored")},
		"not_a_migration.sql": {Data: []byte("SELECT 1;")},
	}
}

func TestLoadMigrations_SortsAndFilters(t *testing.T) {
	migs, err := loadMigrations(testFS(), ".")
	require.NoError(t, err)
	require.Len(t, migs, 2)
	require.Equal(t, int64(1), migs[0].Version)
	require.Equal(t, "init", migs[0].Name)
	require.Equal(t, int64(2), migs[1].Version)
	require.NotEmpty(t, migs[1].Checksum)
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 2;")},
	}
	_, err := loadMigrations(fsys, ".")
	require.ErrorContains(t, err, "duplicate migration version")
}

func TestLoadMigrations_EmbeddedSchema(t *testing.T) {
	migs, err := loadMigrations(embedded, "sql")
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	require.Contains(t, migs[0].SQL, "uq_applications_job_applicant")
}

func TestRunner_AppliesPendingMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SELECT pg_advisory_lock").WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version, checksum FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}))

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE demo").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(int64(1), "init", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("ALTER TABLE demo ADD COLUMN name").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(int64(2), "add_name", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectExec("SELECT pg_advisory_unlock").WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 0))

	r := Runner{FS: testFS(), Dir: "."}
	require.NoError(t, r.Run(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_ChecksumMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SELECT pg_advisory_lock").WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version, checksum FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}).AddRow(int64(1), "edited"))
	mock.ExpectExec("SELECT pg_advisory_unlock").WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 0))

	r := Runner{FS: testFS(), Dir: "."}
	err = r.Run(context.Background(), db)
	require.ErrorContains(t, err, "checksum mismatch")
	require.NoError(t, mock.ExpectationsWereMet())
}
