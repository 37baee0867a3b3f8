package job

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DeadlineLayout = "2006-01-02"

var (
	ErrInvalidType   = errors.New("invalid job type")
	ErrInvalidStatus = errors.New("invalid job status")
)

type Type string

const (
	TypeFullTime   Type = "Full-time"
	TypePartTime   Type = "Part-time"
	TypeInternship Type = "Internship"
)

func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for _, t := range []Type{TypeFullTime, TypePartTime, TypeInternship} {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", ErrInvalidType
}

type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, string(StatusOpen)):
		return StatusOpen, nil
	case strings.EqualFold(s, string(StatusClosed)):
		return StatusClosed, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Posting struct {
	ID             uuid.UUID
	Title          string
	Description    string
	RequiredSkills string
	Location       string
	Type           Type
	Deadline       time.Time
	Status         Status
	PostedBy       uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p Posting) OwnedBy(posterID uuid.UUID) bool {
	return posterID != uuid.Nil && p.PostedBy == posterID
}

func (p Posting) IsOpen() bool {
	return p.Status == StatusOpen
}

// SkillList splits the comma separated RequiredSkills, dropping blanks.
func (p Posting) SkillList() []string {
	return SplitSkills(p.RequiredSkills)
}

// ExpiredOn reports whether the deadline fell on a day before today. A posting
// due today is still open for the whole day.
func (p Posting) ExpiredOn(today time.Time) bool {
	return p.Deadline.Before(truncateDay(today))
}

func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
