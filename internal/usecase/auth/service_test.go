package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"recruitment-portal/internal/domain/identity"
	"recruitment-portal/internal/domain/user"
	"recruitment-portal/internal/pkg/jwt"
)

type memUsers struct {
	byID map[uuid.UUID]user.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]user.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	for _, existing := range m.byID {
		if existing.Email == u.Email || existing.Username == u.Username {
			return user.ErrAlreadyExists
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.GetUserByUsername(ctx, username)
	return err == nil, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, id uuid.UUID, p user.Profile) error {
	u, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.FirstName, u.LastName, u.Phone = p.FirstName, p.LastName, p.Phone
	u.Skills, u.WorkExperience, u.Education = p.Skills, p.WorkExperience, p.Education
	m.byID[id] = u
	return nil
}

func (m *memUsers) UpdateProfilePicture(_ context.Context, id uuid.UUID, ref string) error {
	u, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.ProfilePicture = ref
	m.byID[id] = u
	return nil
}

func newTestAuth(users user.Repository) *Auth {
	a := NewAuthUsecase(users, jwt.NewHMACService("access", "refresh", 15*time.Minute, time.Hour))
	a.creds.cost = bcrypt.MinCost
	return a
}

func registerInput(role string) RegisterInput {
	return RegisterInput{
		Username:             "jobapplicant",
		Email:                "  JobApplicant@Example.com ",
		Password:             "password123",
		PasswordConfirmation: "password123",
		Role:                 role,
	}
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	users := newMemUsers()
	a := newTestAuth(users)
	ctx := context.Background()

	u, pair, err := a.Register(ctx, registerInput("applicant"))
	require.NoError(t, err)
	require.Equal(t, "jobapplicant@example.com", u.Email)
	require.Equal(t, identity.RoleApplicant, u.Role)
	require.Empty(t, u.PasswordHash)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	byName, _, err := a.Login(ctx, LoginInput{Identifier: "jobapplicant", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	byEmail, _, err := a.Login(ctx, LoginInput{Identifier: "JOBAPPLICANT@example.com", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, _, err = a.Login(ctx, LoginInput{Identifier: "jobapplicant", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = a.Login(ctx, LoginInput{Identifier: "nobody", Password: "password123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_RegisterValidation(t *testing.T) {
	a := newTestAuth(newMemUsers())
	ctx := context.Background()

	cases := map[string]func(*RegisterInput){
		"short password":   func(in *RegisterInput) { in.Password, in.PasswordConfirmation = "short", "short" },
		"mismatch":         func(in *RegisterInput) { in.PasswordConfirmation = "password124" },
		"unknown role":     func(in *RegisterInput) { in.Role = "ADMIN" },
		"missing username": func(in *RegisterInput) { in.Username = "  " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := registerInput("POSTER")
			mutate(&in)
			_, _, err := a.Register(ctx, in)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAuth_RegisterDuplicate(t *testing.T) {
	a := newTestAuth(newMemUsers())
	ctx := context.Background()

	_, _, err := a.Register(ctx, registerInput("POSTER"))
	require.NoError(t, err)

	sameEmail := registerInput("POSTER")
	sameEmail.Username = "someoneelse"
	_, _, err = a.Register(ctx, sameEmail)
	require.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	sameName := registerInput("POSTER")
	sameName.Email = "other@example.com"
	_, _, err = a.Register(ctx, sameName)
	require.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestAuth_Refresh(t *testing.T) {
	a := newTestAuth(newMemUsers())
	ctx := context.Background()

	_, pair, err := a.Register(ctx, registerInput("POSTER"))
	require.NoError(t, err)

	next, err := a.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, next.AccessToken)

	_, err = a.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = a.Refresh(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = a.Refresh(ctx, strings.Repeat("x", 20))
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}
