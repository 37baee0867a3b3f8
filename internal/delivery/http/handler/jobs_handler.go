package handler

import (
	"errors"

	"recruitment-portal/internal/delivery/http/dto"
	"recruitment-portal/internal/delivery/http/middleware"
	"recruitment-portal/internal/pkg/response"
	jobuc "recruitment-portal/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc jobuc.CatalogUsecase
}

func NewJobsHandler(uc jobuc.CatalogUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListOpen(c.Context(), jobuc.ListParams{Limit: limit, Offset: offset})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewJobListResponse(items))
}

func (h *JobsHandler) HandleLatestJobs(c fiber.Ctx) error {
	items, err := h.uc.Latest(c.Context())
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewJobListResponse(items))
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewJobResponse(p))
}

func (h *JobsHandler) HandleListOwned(c fiber.Ctx) error {
	poster, err := middleware.PosterFrom(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListOwned(c.Context(), poster)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewJobListResponse(items))
}

func (h *JobsHandler) HandleCreate(c fiber.Ctx) error {
	poster, err := middleware.PosterFrom(c)
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Create(c.Context(), poster, jobInput(req))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Created(c, dto.NewJobResponse(p))
}

func (h *JobsHandler) HandleUpdate(c fiber.Ctx) error {
	poster, err := middleware.PosterFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Update(c.Context(), poster, id, jobInput(req))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewJobResponse(p))
}

func (h *JobsHandler) HandleDelete(c fiber.Ctx) error {
	poster, err := middleware.PosterFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), poster, id); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "deleted", nil)
}

func jobInput(req dto.JobRequest) jobuc.Input {
	return jobuc.Input{
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		Location:       req.Location,
		Type:           req.JobType,
		Deadline:       req.ApplicationDeadline,
		Status:         req.Status,
	}
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *jobuc.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", verr.Fields, err)
	case errors.Is(err, jobuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, jobuc.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, jobuc.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "You do not own this job posting", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
