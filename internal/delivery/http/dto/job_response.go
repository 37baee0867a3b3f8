package dto

import (
	"time"

	"recruitment-portal/internal/domain/job"

	"github.com/google/uuid"
)

type JobRequest struct {
	Title               string `json:"title" validate:"required,max=255"`
	Description         string `json:"description" validate:"required"`
	RequiredSkills      string `json:"required_skills"`
	Location            string `json:"location" validate:"required,max=255"`
	JobType             string `json:"job_type" validate:"required"`
	ApplicationDeadline string `json:"application_deadline" validate:"required,datetime=2006-01-02"`
	Status              string `json:"status" validate:"omitempty,oneof=Open Closed open closed"`
}

type JobResponse struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	RequiredSkills      []string  `json:"required_skills"`
	Location            string    `json:"location"`
	JobType             string    `json:"job_type"`
	ApplicationDeadline string    `json:"application_deadline"`
	Status              string    `json:"status"`
	PostedBy            uuid.UUID `json:"posted_by"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func NewJobResponse(p job.Posting) JobResponse {
	return JobResponse{
		ID:                  p.ID,
		Title:               p.Title,
		Description:         p.Description,
		RequiredSkills:      p.SkillList(),
		Location:            p.Location,
		JobType:             string(p.Type),
		ApplicationDeadline: p.Deadline.Format(job.DeadlineLayout),
		Status:              string(p.Status),
		PostedBy:            p.PostedBy,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func NewJobListResponse(in []job.Posting) []JobResponse {
	out := make([]JobResponse, 0, len(in))
	for _, p := range in {
		out = append(out, NewJobResponse(p))
	}
	return out
}
