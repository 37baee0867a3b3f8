package seeder

import (
	"context"
	"regexp"
	"testing"
	"time"

	"recruitment-portal/internal/database/sqldb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMockDB(t *testing.T) (*sqldb.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqldb.New(raw), mock
}

func columnRows(cols ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"column_name"})
	for _, c := range cols {
		rows.AddRow(c)
	}
	return rows
}

func TestUsersSeeder_InsertsDemoAccounts(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).WithArgs("users").
		WillReturnRows(columnRows("id", "username", "email", "password_hash", "role", "first_name", "last_name", "phone"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(sqlmock.AnyArg(), DemoPosterUsername, "jobposter@example.com", sqlmock.AnyArg(), "POSTER", "Jane", "Recruiter").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(sqlmock.AnyArg(), DemoApplicantUsername, "jobapplicant@example.com", sqlmock.AnyArg(), "APPLICANT", "John", "Seeker").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := UsersSeeder{Password: DemoPassword, Cost: bcrypt.MinCost}.Run(context.Background(), db)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersSeeder_SchemaMismatch(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).WithArgs("users").
		WillReturnRows(columnRows("id", "username"))

	err := UsersSeeder{Password: DemoPassword, Cost: bcrypt.MinCost}.Run(context.Background(), db)
	require.ErrorIs(t, err, ErrSchemaMismatch)
	require.ErrorContains(t, err, "missing column users.email, users.password_hash")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureTableColumns_TableMissing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).WithArgs("jobs").
		WillReturnRows(columnRows())

	err := EnsureTableColumns(context.Background(), db, "jobs", "id")
	require.ErrorIs(t, err, ErrSchemaMismatch)
	require.ErrorContains(t, err, "run migrations first")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobsSeeder_PostsSampleJobsAsDemoPoster(t *testing.T) {
	db, mock := newMockDB(t)
	poster := uuid.New()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).WithArgs("jobs").
		WillReturnRows(columnRows("id", "title", "description", "required_skills", "location", "job_type", "application_deadline", "status", "posted_by"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE username = $1")).
		WithArgs(DemoPosterUsername).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(poster.String()))
	mock.ExpectBegin()
	for _, it := range sampleJobs {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO jobs")).
			WithArgs(sqlmock.AnyArg(), it.Title, it.Description, it.Skills, it.Location, it.JobType,
				now.AddDate(0, 0, it.OpenDays).Format("2006-01-02"), poster).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err := JobsSeeder{Now: func() time.Time { return now }}.Run(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, sampleJobs, 3)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_WrapsSeederName(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).WithArgs("jobs").
		WillReturnRows(columnRows("id"))

	err := Runner{Seeders: []Seeder{JobsSeeder{}}}.Run(context.Background(), db)
	require.ErrorContains(t, err, "seed jobs:")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReset(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE notifications, applications, jobs, users")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Reset(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
