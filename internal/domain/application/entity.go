package application

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid application status")

type Status string

const (
	StatusPending   Status = "Pending"
	StatusInterview Status = "Interview"
	StatusAccepted  Status = "Accepted"
	StatusRejected  Status = "Rejected"
)

var statuses = []Status{StatusPending, StatusInterview, StatusAccepted, StatusRejected}

func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// transitions lists, per state, the states a poster may move an application
// to. Every state is reachable from every other one.
var transitions = map[Status][]Status{
	StatusPending:   {StatusInterview, StatusAccepted, StatusRejected},
	StatusInterview: {StatusPending, StatusAccepted, StatusRejected},
	StatusAccepted:  {StatusPending, StatusInterview, StatusRejected},
	StatusRejected:  {StatusPending, StatusInterview, StatusAccepted},
}

// CanTransition reports whether from -> to is a change the workflow accepts.
// Staying in the same state is not a transition.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Application struct {
	ID                  uuid.UUID
	JobID               uuid.UUID
	ApplicantID         uuid.UUID
	FullName            string
	Email               string
	PhoneNumber         string
	Skills              string
	WorkExperience      string
	Education           string
	CVFile              string
	AdditionalDocuments string
	Status              Status
	Feedback            string
	IsActive            bool
	SubmittedAt         time.Time
	UpdatedAt           time.Time

	// JobTitle is filled by read paths that join the posting.
	JobTitle string
}

func (a Application) SubmittedBy(applicantID uuid.UUID) bool {
	return applicantID != uuid.Nil && a.ApplicantID == applicantID
}

var documentExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// AllowedDocument reports whether filename carries an accepted CV or
// supporting document extension. The check is case-insensitive.
func AllowedDocument(filename string) bool {
	_, ok := documentExtensions[strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))]
	return ok
}
