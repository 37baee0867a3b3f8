package seeder

import (
	"context"
	"fmt"

	"recruitment-portal/internal/database"
	"recruitment-portal/internal/domain/identity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoPosterUsername    = "jobposter"
	DemoApplicantUsername = "jobapplicant"
)

type UsersSeeder struct {
	Password string
	// Cost defaults to bcrypt.DefaultCost.
	Cost int
}

func (UsersSeeder) Name() string { return "users" }

func (s UsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "username", "email", "password_hash", "role", "first_name", "last_name"); err != nil {
		return err
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Username  string
		Email     string
		Role      identity.Role
		FirstName string
		LastName  string
	}{
		{Username: DemoPosterUsername, Email: "jobposter@example.com", Role: identity.RolePoster, FirstName: "Jane", LastName: "Recruiter"},
		{Username: DemoApplicantUsername, Email: "jobapplicant@example.com", Role: identity.RoleApplicant, FirstName: "John", LastName: "Seeker"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, username, email, password_hash, role, first_name, last_name)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (username) DO NOTHING`,
			uuid.New(),
			it.Username,
			it.Email,
			string(hash),
			string(it.Role),
			it.FirstName,
			it.LastName,
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
