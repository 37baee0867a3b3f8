package handler

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime/multipart"
	"path"

	"recruitment-portal/internal/delivery/http/dto"
	"recruitment-portal/internal/delivery/http/middleware"
	"recruitment-portal/internal/pkg/response"
	appuc "recruitment-portal/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
)

// DocumentOpener reads stored uploads by reference.
type DocumentOpener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

type ApplicationHandler struct {
	engine appuc.Engine
	docs   DocumentOpener
}

func NewApplicationHandler(engine appuc.Engine, docs DocumentOpener) *ApplicationHandler {
	return &ApplicationHandler{engine: engine, docs: docs}
}

// Submit handles multipart POST /jobs/:id/applications with the files
// cv_file and, optionally, additional_documents.
func (h *ApplicationHandler) Submit(c fiber.Ctx) error {
	applicant, err := middleware.ApplicantFrom(c)
	if err != nil {
		return err
	}
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	in := appuc.SubmitInput{
		FullName:       c.FormValue("full_name"),
		Email:          c.FormValue("email"),
		PhoneNumber:    c.FormValue("phone_number"),
		Skills:         c.FormValue("skills"),
		WorkExperience: c.FormValue("work_experience"),
		Education:      c.FormValue("education"),
	}

	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	if fh, err := c.FormFile("cv_file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid upload", nil, err)
		}
		opened = append(opened, f)
		in.CV = appuc.Upload{Filename: fh.Filename, Content: f}
	}
	if fh, err := c.FormFile("additional_documents"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid upload", nil, err)
		}
		opened = append(opened, f)
		in.AdditionalDocument = &appuc.Upload{Filename: fh.Filename, Content: f}
	}

	a, err := h.engine.Submit(c.Context(), applicant, jobID, in)
	if err != nil {
		return mapEngineError(err)
	}
	return response.Created(c, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	applicant, err := middleware.ApplicantFrom(c)
	if err != nil {
		return err
	}
	items, err := h.engine.ListForApplicant(c.Context(), applicant)
	if err != nil {
		return mapEngineError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(items))
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	poster, err := middleware.PosterFrom(c)
	if err != nil {
		return err
	}
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	items, err := h.engine.ListForJob(c.Context(), poster, jobID)
	if err != nil {
		return mapEngineError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(items))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	a, err := h.engine.Get(c.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		return mapEngineError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	poster, err := middleware.PosterFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.engine.UpdateStatus(c.Context(), poster, id, req.Status)
	if err != nil {
		return mapEngineError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application status updated", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) AttachFeedback(c fiber.Ctx) error {
	poster, err := middleware.PosterFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.engine.AttachFeedback(c.Context(), poster, id, req.Feedback)
	if err != nil {
		return mapEngineError(err)
	}
	return response.Success(c, fiber.StatusOK, "Feedback submitted successfully", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) Withdraw(c fiber.Ctx) error {
	applicant, err := middleware.ApplicantFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	a, err := h.engine.Withdraw(c.Context(), applicant, id)
	if err != nil {
		return mapEngineError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application withdrawn", dto.NewApplicationResponse(a))
}

// Document streams GET /applications/:id/documents/:kind to the applicant
// who submitted it or the poster owning the job.
func (h *ApplicationHandler) Document(c fiber.Ctx) error {
	caller := middleware.CallerFrom(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	a, err := h.engine.Get(c.Context(), caller, id)
	if err != nil {
		return mapEngineError(err)
	}

	var ref string
	switch c.Params("kind") {
	case dto.DocumentCV:
		ref = a.CVFile
	case dto.DocumentAdditional:
		ref = a.AdditionalDocuments
	}
	if ref == "" || h.docs == nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Document not found", nil, nil)
	}

	f, err := h.docs.Open(c.Context(), ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return middleware.NewAppError(fiber.StatusNotFound, "Document not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	c.Attachment(path.Base(ref))
	return c.SendStream(f)
}

func mapEngineError(err error) error {
	var verr *appuc.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", verr.Fields, err)
	case errors.Is(err, appuc.ErrValidationFailed):
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", nil, err)
	case errors.Is(err, appuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, appuc.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	case errors.Is(err, appuc.ErrDuplicateApplication):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied for this job", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
