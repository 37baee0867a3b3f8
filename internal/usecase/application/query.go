package application

import (
	"context"

	appdomain "recruitment-portal/internal/domain/application"
	"recruitment-portal/internal/domain/identity"

	"github.com/google/uuid"
)

// ListForApplicant returns the applicant's active applications, newest first.
func (s *Service) ListForApplicant(ctx context.Context, applicant identity.Applicant) ([]appdomain.Application, error) {
	out, err := s.applications.ListActiveByApplicant(ctx, applicant.ID)
	if err != nil {
		return nil, s.fail("list_for_applicant", err)
	}
	return out, nil
}

// ListForJob returns every application for the poster's job, withdrawn ones
// included, newest first.
func (s *Service) ListForJob(ctx context.Context, poster identity.Poster, jobID uuid.UUID) ([]appdomain.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, s.fail("list_for_job", err)
	}
	if !j.OwnedBy(poster.ID) {
		return nil, ErrForbidden
	}
	out, err := s.applications.ListAllByJob(ctx, jobID)
	if err != nil {
		return nil, s.fail("list_for_job", err)
	}
	return out, nil
}

// Get returns the application to its applicant or to the poster owning the job.
func (s *Service) Get(ctx context.Context, caller identity.Caller, id uuid.UUID) (appdomain.Application, error) {
	a, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return appdomain.Application{}, s.fail("get", err)
	}

	switch c := caller.(type) {
	case identity.Applicant:
		if a.SubmittedBy(c.ID) {
			return a, nil
		}
	case identity.Poster:
		j, err := s.jobs.GetByID(ctx, a.JobID)
		if err != nil {
			return appdomain.Application{}, s.fail("get", err)
		}
		if j.OwnedBy(c.ID) {
			return a, nil
		}
	}
	return appdomain.Application{}, ErrForbidden
}
