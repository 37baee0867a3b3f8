package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"recruitment-portal/internal/domain/identity"
	"recruitment-portal/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("username or email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
	Role                 string
}

// LoginInput accepts either a username or an email in Identifier.
type LoginInput struct {
	Identifier string
	Password   string
}

type Service struct {
	users user.Repository
	cost  int
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" || email == "" {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) || in.Password != in.PasswordConfirmation {
		return user.User{}, ErrInvalidInput
	}
	role, err := identity.ParseRole(in.Role)
	if err != nil {
		return user.User{}, ErrInvalidInput
	}

	taken, err := s.taken(ctx, username, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if taken {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	ident := strings.TrimSpace(in.Identifier)
	if ident == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	var (
		u   user.User
		err error
	)
	if strings.Contains(ident, "@") {
		u, err = s.users.GetUserByEmail(ctx, normalizeEmail(ident))
	} else {
		u, err = s.users.GetUserByUsername(ctx, ident)
	}
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func (s *Service) taken(ctx context.Context, username, email string) (bool, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil || exists {
		return exists, err
	}
	return s.users.ExistsByUsername(ctx, username)
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	pw = strings.TrimSpace(pw)
	if len(pw) < 8 {
		return false
	}
	return true
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
