package user

import (
	"strings"
	"time"

	"recruitment-portal/internal/domain/identity"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	PasswordHash   string
	Role           identity.Role
	FirstName      string
	LastName       string
	Phone          string
	Skills         string
	WorkExperience string
	Education      string
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Profile is the editable part of a user. Role is not part of it.
type Profile struct {
	FirstName      string
	LastName       string
	Phone          string
	Skills         string
	WorkExperience string
	Education      string
}

func (u User) Caller() identity.Caller {
	return identity.New(u.ID, u.Role)
}

func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

func (u User) IsApplicant() bool {
	return u.Role == identity.RoleApplicant
}
