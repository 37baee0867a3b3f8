package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruitment-portal/internal/database"
	"recruitment-portal/internal/domain/job"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobOwner    = errors.New("job owner does not exist")
)

type JobRepository interface {
	Create(ctx context.Context, p job.Posting) error
	Update(ctx context.Context, p job.Posting) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	ListOpen(ctx context.Context, limit, offset int) ([]job.Posting, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]job.Posting, error)
	CloseExpired(ctx context.Context, today time.Time) (int64, error)
}

const jobColumns = `id, title, description, required_skills, location, job_type,
	application_deadline, status, posted_by, created_at, updated_at`

type PostgresJobRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db, now: time.Now}
}

func (r *PostgresJobRepository) Create(ctx context.Context, p job.Posting) error {
	now := r.now().UTC()
	_, err := database.Conn(ctx, r.db).Exec(ctx,
		`INSERT INTO jobs (id, title, description, required_skills, location, job_type,
		 	application_deadline, status, posted_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		p.ID, p.Title, p.Description, p.RequiredSkills, p.Location, string(p.Type),
		p.Deadline, string(p.Status), p.PostedBy, now,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrJobOwner
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, p job.Posting) error {
	n, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE jobs
		 SET title = $2, description = $3, required_skills = $4, location = $5, job_type = $6,
		 	application_deadline = $7, status = $8, updated_at = $9
		 WHERE id = $1`,
		p.ID, p.Title, p.Description, p.RequiredSkills, p.Location, string(p.Type),
		p.Deadline, string(p.Status), r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	p, err := scanJob(row)
	if err != nil {
		if isNoRows(err) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) ListOpen(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE status = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		string(job.StatusOpen), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]job.Posting, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE posted_by = $1
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

// CloseExpired closes open postings whose deadline is before today.
func (r *PostgresJobRepository) CloseExpired(ctx context.Context, today time.Time) (int64, error) {
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	n, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = $2
		 WHERE status = $3 AND application_deadline < $4`,
		string(job.StatusClosed), r.now().UTC(), string(job.StatusOpen), day,
	)
	if err != nil {
		return 0, fmt.Errorf("close expired jobs: %w", err)
	}
	return n, nil
}

func collectJobs(rows database.Rows) ([]job.Posting, error) {
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Posting, error) {
	var p job.Posting
	var typ, status string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.RequiredSkills, &p.Location, &typ,
		&p.Deadline, &status, &p.PostedBy, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return job.Posting{}, err
	}
	p.Type = job.Type(typ)
	p.Status = job.Status(status)
	return p, nil
}
