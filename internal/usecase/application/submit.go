package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	appdomain "recruitment-portal/internal/domain/application"
	"recruitment-portal/internal/domain/identity"
	"recruitment-portal/internal/metrics"
	"recruitment-portal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	cvDir        = "cvs"
	documentsDir = "additional_documents"
)

type Upload struct {
	Filename string
	Content  io.Reader
}

// SubmitInput holds the applicant's snapshot at submission time. The values
// are stored as given and never refreshed from the profile.
type SubmitInput struct {
	FullName       string
	Email          string
	PhoneNumber    string
	Skills         string
	WorkExperience string
	Education      string

	CV                 Upload
	AdditionalDocument *Upload
}

func (in SubmitInput) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(in.FullName) == "" {
		fields["full_name"] = "is required"
	}
	if strings.TrimSpace(in.Email) == "" {
		fields["email"] = "is required"
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		fields["phone_number"] = "is required"
	}
	switch {
	case strings.TrimSpace(in.CV.Filename) == "" || in.CV.Content == nil:
		fields["cv_file"] = "is required"
	case !appdomain.AllowedDocument(in.CV.Filename):
		fields["cv_file"] = "only .pdf, .doc and .docx files are allowed"
	}
	if doc := in.AdditionalDocument; doc != nil && doc.Content != nil && strings.TrimSpace(doc.Filename) != "" {
		if !appdomain.AllowedDocument(doc.Filename) {
			fields["additional_documents"] = "only .pdf, .doc and .docx files are allowed"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Submit creates a Pending application for the job. One applicant gets one
// application per job, withdrawn or not.
func (s *Service) Submit(ctx context.Context, applicant identity.Applicant, jobID uuid.UUID, in SubmitInput) (appdomain.Application, error) {
	if err := in.validate(); err != nil {
		return appdomain.Application{}, err
	}

	id := s.newID()
	saved := make([]string, 0, 2)
	cleanup := func() {
		for _, ref := range saved {
			if err := s.files.Remove(context.WithoutCancel(ctx), ref); err != nil {
				s.logger.Warn("remove uploaded file failed", zap.String("ref", ref), zap.Error(err))
			}
		}
	}

	cvRef, err := s.files.Save(ctx, cvDir, storedName(id, in.CV.Filename), in.CV.Content)
	if err != nil {
		s.logger.Error("store cv failed", zap.Error(err))
		return appdomain.Application{}, ErrInternal
	}
	saved = append(saved, cvRef)

	var docRef string
	if doc := in.AdditionalDocument; doc != nil && doc.Content != nil && strings.TrimSpace(doc.Filename) != "" {
		docRef, err = s.files.Save(ctx, documentsDir, storedName(id, doc.Filename), doc.Content)
		if err != nil {
			cleanup()
			s.logger.Error("store additional document failed", zap.Error(err))
			return appdomain.Application{}, ErrInternal
		}
		saved = append(saved, docRef)
	}

	now := s.now().UTC()
	a := appdomain.Application{
		ID:                  id,
		JobID:               jobID,
		ApplicantID:         applicant.ID,
		FullName:            in.FullName,
		Email:               in.Email,
		PhoneNumber:         in.PhoneNumber,
		Skills:              in.Skills,
		WorkExperience:      in.WorkExperience,
		Education:           in.Education,
		CVFile:              cvRef,
		AdditionalDocuments: docRef,
		Status:              appdomain.StatusPending,
		IsActive:            true,
		SubmittedAt:         now,
		UpdatedAt:           now,
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		j, err := s.jobs.GetByID(ctx, jobID)
		if err != nil {
			return err
		}
		exists, err := s.applications.ExistsForApplicant(ctx, jobID, applicant.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateApplication
		}
		if err := s.applications.Create(ctx, a); err != nil {
			return err
		}
		a.JobTitle = j.Title
		return nil
	})
	if err != nil {
		cleanup()
		return appdomain.Application{}, s.fail("submit", err)
	}

	metrics.RecordTransition("submit", string(appdomain.StatusPending))
	s.logger.Info("application submitted",
		zap.String("application_id", a.ID.String()),
		zap.String("job_id", jobID.String()),
		zap.String("applicant_id", applicant.ID.String()),
	)
	return a, nil
}

func storedName(id uuid.UUID, filename string) string {
	return id.String() + strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
}

// fail maps repository and storage errors onto the package sentinels.
func (s *Service) fail(op string, err error) error {
	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrDuplicateApplication),
		errors.Is(err, ErrValidationFailed):
		return err
	case errors.Is(err, repository.ErrJobNotFound),
		errors.Is(err, repository.ErrApplicationNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicateApplication):
		return ErrDuplicateApplication
	default:
		s.logger.Error("application workflow failed", zap.String("operation", op), zap.Error(err))
		return ErrInternal
	}
}
