package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruitment-portal/internal/database"
	"recruitment-portal/internal/domain/application"

	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job")
)

// ApplicationRepository has two read paths on purpose. ListActiveByApplicant
// hides withdrawn applications; ListAllByJob returns them too.
type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (application.Application, error)
	ExistsForApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	ListActiveByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error)
	ListAllByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, at time.Time) error
	UpdateFeedback(ctx context.Context, id uuid.UUID, feedback string, at time.Time) error
	Deactivate(ctx context.Context, id uuid.UUID, at time.Time) error
	CountByJobOwner(ctx context.Context, ownerID uuid.UUID, since time.Time) (total int, recent int, err error)
}

const applicationColumns = `a.id, a.job_id, a.applicant_id, a.full_name, a.email, a.phone_number, a.skills,
	a.work_experience, a.education, a.cv_file, a.additional_documents, a.status, a.feedback, a.is_active,
	a.submitted_at, a.updated_at, j.title`

const applicationFrom = ` FROM applications a JOIN jobs j ON j.id = a.job_id`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := database.Conn(ctx, r.db).Exec(ctx,
		`INSERT INTO applications (id, job_id, applicant_id, full_name, email, phone_number, skills,
		 	work_experience, education, cv_file, additional_documents, status, feedback, is_active,
		 	submitted_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		a.ID, a.JobID, a.ApplicantID, a.FullName, a.Email, a.PhoneNumber, a.Skills,
		a.WorkExperience, a.Education, a.CVFile, a.AdditionalDocuments, string(a.Status), a.Feedback, a.IsActive,
		a.SubmittedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateApplication
		}
		if isForeignKeyViolation(err) {
			return ErrJobNotFound
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return r.get(ctx, `SELECT `+applicationColumns+applicationFrom+` WHERE a.id = $1`, id)
}

// GetByIDForUpdate locks the row until the surrounding transaction ends.
func (r *PostgresApplicationRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return r.get(ctx, `SELECT `+applicationColumns+applicationFrom+` WHERE a.id = $1 FOR UPDATE OF a`, id)
}

func (r *PostgresApplicationRepository) ExistsForApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	row := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	)
	if err := row.Scan(&exists); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) ListActiveByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT `+applicationColumns+applicationFrom+`
		 WHERE a.applicant_id = $1 AND a.is_active = TRUE
		 ORDER BY a.submitted_at DESC`,
		applicantID,
	)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *PostgresApplicationRepository) ListAllByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT `+applicationColumns+applicationFrom+`
		 WHERE a.job_id = $1
		 ORDER BY a.submitted_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, at time.Time) error {
	return r.update(ctx, "update application status",
		`UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), at,
	)
}

func (r *PostgresApplicationRepository) UpdateFeedback(ctx context.Context, id uuid.UUID, feedback string, at time.Time) error {
	return r.update(ctx, "update application feedback",
		`UPDATE applications SET feedback = $2, updated_at = $3 WHERE id = $1`,
		id, feedback, at,
	)
}

func (r *PostgresApplicationRepository) Deactivate(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.update(ctx, "deactivate application",
		`UPDATE applications SET is_active = FALSE, updated_at = $2 WHERE id = $1`,
		id, at,
	)
}

func (r *PostgresApplicationRepository) CountByJobOwner(ctx context.Context, ownerID uuid.UUID, since time.Time) (int, int, error) {
	var total, recent int
	row := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE a.submitted_at >= $2)
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE j.posted_by = $1`,
		ownerID, since,
	)
	if err := row.Scan(&total, &recent); err != nil {
		return 0, 0, fmt.Errorf("count applications: %w", err)
	}
	return total, recent, nil
}

func (r *PostgresApplicationRepository) get(ctx context.Context, query string, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) update(ctx context.Context, op, query string, args ...any) error {
	n, err := database.Conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func collectApplications(rows database.Rows) ([]application.Application, error) {
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(
		&a.ID, &a.JobID, &a.ApplicantID, &a.FullName, &a.Email, &a.PhoneNumber, &a.Skills,
		&a.WorkExperience, &a.Education, &a.CVFile, &a.AdditionalDocuments, &status, &a.Feedback, &a.IsActive,
		&a.SubmittedAt, &a.UpdatedAt, &a.JobTitle,
	); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
