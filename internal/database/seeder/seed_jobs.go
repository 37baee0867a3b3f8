package seeder

import (
	"context"
	"fmt"
	"time"

	"recruitment-portal/internal/database"

	"github.com/google/uuid"
)

// JobsSeeder posts sample jobs as the demo poster. A title already posted by
// that poster is skipped.
type JobsSeeder struct {
	Now func() time.Time
}

func (JobsSeeder) Name() string { return "jobs" }

func (s JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id",
		"title",
		"description",
		"required_skills",
		"location",
		"job_type",
		"application_deadline",
		"status",
		"posted_by",
	); err != nil {
		return err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	today := now().UTC()

	var posterID uuid.UUID
	if err := db.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, DemoPosterUsername).Scan(&posterID); err != nil {
		return fmt.Errorf("load demo poster: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range sampleJobs {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO jobs (id, title, description, required_skills, location, job_type, application_deadline, status, posted_by)
			 SELECT $1, $2, $3, $4, $5, $6, $7, 'Open', $8
			 WHERE NOT EXISTS (SELECT 1 FROM jobs WHERE title = $2 AND posted_by = $8)`,
			uuid.New(),
			it.Title,
			it.Description,
			it.Skills,
			it.Location,
			it.JobType,
			today.AddDate(0, 0, it.OpenDays).Format("2006-01-02"),
			posterID,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

var sampleJobs = []struct {
	Title       string
	Description string
	Skills      string
	Location    string
	JobType     string
	OpenDays    int
}{
	{
		Title:       "Backend Engineer",
		Description: "Build and operate the APIs behind our hiring platform.",
		Skills:      "Go, PostgreSQL, Redis",
		Location:    "Jakarta",
		JobType:     "Full-time",
		OpenDays:    30,
	},
	{
		Title:       "Frontend Developer",
		Description: "Own the applicant and recruiter web experience.",
		Skills:      "TypeScript, React, CSS",
		Location:    "Remote",
		JobType:     "Part-time",
		OpenDays:    21,
	},
	{
		Title:       "Data Analyst Intern",
		Description: "Help the team understand the hiring funnel.",
		Skills:      "SQL, Python",
		Location:    "Bandung",
		JobType:     "Internship",
		OpenDays:    14,
	},
}
