// Package identity maps an authenticated principal to the single role it was
// registered with. Operations that need a role take Poster or Applicant as a
// parameter, so a caller of the wrong kind cannot reach them.
package identity

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RolePoster    Role = "POSTER"
	RoleApplicant Role = "APPLICANT"
)

var ErrInvalidRole = errors.New("invalid role")

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RolePoster:
		return RolePoster, nil
	case RoleApplicant:
		return RoleApplicant, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }

// Caller is one of Poster, Applicant or Anonymous.
type Caller interface {
	UserID() uuid.UUID
	caller()
}

type Poster struct {
	ID uuid.UUID
}

type Applicant struct {
	ID uuid.UUID
}

type Anonymous struct{}

func (p Poster) UserID() uuid.UUID    { return p.ID }
func (a Applicant) UserID() uuid.UUID { return a.ID }
func (Anonymous) UserID() uuid.UUID   { return uuid.Nil }

func (Poster) caller()    {}
func (Applicant) caller() {}
func (Anonymous) caller() {}

// New builds the caller for a stored user. An unknown role yields Anonymous.
func New(id uuid.UUID, role Role) Caller {
	if id == uuid.Nil {
		return Anonymous{}
	}
	switch role {
	case RolePoster:
		return Poster{ID: id}
	case RoleApplicant:
		return Applicant{ID: id}
	default:
		return Anonymous{}
	}
}

func AsPoster(c Caller) (Poster, bool) {
	p, ok := c.(Poster)
	return p, ok
}

func AsApplicant(c Caller) (Applicant, bool) {
	a, ok := c.(Applicant)
	return a, ok
}

func IsAuthenticated(c Caller) bool {
	if c == nil {
		return false
	}
	_, anon := c.(Anonymous)
	return !anon
}

func RoleOf(c Caller) (Role, bool) {
	switch c.(type) {
	case Poster:
		return RolePoster, true
	case Applicant:
		return RoleApplicant, true
	default:
		return "", false
	}
}
