package seeder

import (
	"context"
	"fmt"

	"recruitment-portal/internal/database"
)

// Seeder inserts one kind of demo data. Run must be safe to repeat.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Runner applies seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

// Reset removes all portal data in a single TRUNCATE.
func Reset(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if _, err := db.Exec(ctx, `TRUNCATE notifications, applications, jobs, users`); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
