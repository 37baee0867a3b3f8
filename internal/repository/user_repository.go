package repository

import (
	"context"
	"fmt"
	"time"

	"recruitment-portal/internal/database"
	"recruitment-portal/internal/domain/identity"
	"recruitment-portal/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, username, email, password_hash, role, first_name, last_name, phone,
	skills, work_experience, education, profile_picture, created_at, updated_at`

type PostgresUserRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, now: time.Now}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	now := r.now().UTC()
	_, err := database.Conn(ctx, r.db).Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, role, first_name, last_name, phone,
		 	skills, work_experience, education, profile_picture, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`,
		u.ID, u.Username, u.Email, u.PasswordHash, string(u.Role),
		u.FirstName, u.LastName, u.Phone, u.Skills, u.WorkExperience, u.Education, u.ProfilePicture,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	row := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *PostgresUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p user.Profile) error {
	n, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE users
		 SET first_name = $2, last_name = $3, phone = $4, skills = $5,
		 	work_experience = $6, education = $7, updated_at = $8
		 WHERE id = $1`,
		id, p.FirstName, p.LastName, p.Phone, p.Skills, p.WorkExperience, p.Education, r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdateProfilePicture(ctx context.Context, id uuid.UUID, ref string) error {
	n, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE users SET profile_picture = $2, updated_at = $3 WHERE id = $1`,
		id, ref, r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update profile picture: %w", err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.FirstName, &u.LastName, &u.Phone,
		&u.Skills, &u.WorkExperience, &u.Education, &u.ProfilePicture, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = identity.Role(role)
	return u, nil
}
