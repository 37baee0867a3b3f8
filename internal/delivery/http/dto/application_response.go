package dto

import (
	"time"

	"recruitment-portal/internal/domain/application"

	"github.com/google/uuid"
)

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

const (
	DocumentCV         = "cv"
	DocumentAdditional = "additional"
)

// DocumentPath is the authenticated download route for an application upload.
func DocumentPath(id uuid.UUID, kind string) string {
	return "/api/v1/applications/" + id.String() + "/documents/" + kind
}

func documentURL(a application.Application, ref, kind string) string {
	if ref == "" {
		return ""
	}
	return DocumentPath(a.ID, kind)
}

type ApplicationResponse struct {
	ID                     uuid.UUID `json:"id"`
	JobID                  uuid.UUID `json:"job_id"`
	JobTitle               string    `json:"job_title,omitempty"`
	ApplicantID            uuid.UUID `json:"applicant_id"`
	FullName               string    `json:"full_name"`
	Email                  string    `json:"email"`
	PhoneNumber            string    `json:"phone_number"`
	Skills                 string    `json:"skills"`
	WorkExperience         string    `json:"work_experience"`
	Education              string    `json:"education"`
	CVFileURL              string    `json:"cv_file_url"`
	AdditionalDocumentsURL string    `json:"additional_documents_url,omitempty"`
	Status                 string    `json:"status"`
	Feedback               string    `json:"feedback,omitempty"`
	IsActive               bool      `json:"is_active"`
	SubmittedAt            time.Time `json:"submitted_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NewApplicationResponse links uploads to their download routes, never to
// the stored file.
func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                     a.ID,
		JobID:                  a.JobID,
		JobTitle:               a.JobTitle,
		ApplicantID:            a.ApplicantID,
		FullName:               a.FullName,
		Email:                  a.Email,
		PhoneNumber:            a.PhoneNumber,
		Skills:                 a.Skills,
		WorkExperience:         a.WorkExperience,
		Education:              a.Education,
		CVFileURL:              documentURL(a, a.CVFile, DocumentCV),
		AdditionalDocumentsURL: documentURL(a, a.AdditionalDocuments, DocumentAdditional),
		Status:                 string(a.Status),
		Feedback:               a.Feedback,
		IsActive:               a.IsActive,
		SubmittedAt:            a.SubmittedAt,
		UpdatedAt:              a.UpdatedAt,
	}
}

func NewApplicationListResponse(in []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(in))
	for _, a := range in {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
