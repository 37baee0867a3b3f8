package handler

import (
	"recruitment-portal/internal/delivery/http/dto"
	"recruitment-portal/internal/delivery/http/middleware"
	"recruitment-portal/internal/pkg/response"
	"recruitment-portal/internal/usecase/dashboard"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc dashboard.DashboardUsecase
}

func NewDashboardHandler(uc dashboard.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) Applicant(c fiber.Ctx) error {
	applicant, err := middleware.ApplicantFrom(c)
	if err != nil {
		return err
	}
	d, err := h.uc.ForApplicant(c.Context(), applicant)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ApplicantDashboardResponse{
		Applications:        dto.NewApplicationListResponse(d.Applications),
		TotalApplications:   d.TotalApplications,
		InterviewCount:      d.InterviewCount,
		UnreadNotifications: dto.NewNotificationListResponse(d.UnreadNotifications),
	})
}

func (h *DashboardHandler) Poster(c fiber.Ctx) error {
	poster, err := middleware.PosterFrom(c)
	if err != nil {
		return err
	}
	d, err := h.uc.ForPoster(c.Context(), poster)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.PosterDashboardResponse{
		Jobs:               dto.NewJobListResponse(d.Jobs),
		TotalJobs:          d.TotalJobs,
		TotalApplications:  d.TotalApplications,
		RecentApplications: d.RecentApplications,
	})
}
