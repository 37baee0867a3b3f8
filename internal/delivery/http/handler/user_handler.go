package handler

import (
	"errors"

	"recruitment-portal/internal/delivery/http/dto"
	"recruitment-portal/internal/delivery/http/middleware"
	"recruitment-portal/internal/pkg/response"
	useruc "recruitment-portal/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc useruc.ProfileUsecase
}

func NewUserHandler(uc useruc.ProfileUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	prof, err := h.uc.GetProfile(c.Context(), middleware.CallerFrom(c))
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(prof, h.uc.PictureURL(prof)))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if req.FirstName == nil && req.LastName == nil && req.Phone == nil &&
		req.Skills == nil && req.WorkExperience == nil && req.Education == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	prof, err := h.uc.UpdateProfile(c.Context(), middleware.CallerFrom(c), useruc.UpdateProfileInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Skills:         req.Skills,
		WorkExperience: req.WorkExperience,
		Education:      req.Education,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(prof, h.uc.PictureURL(prof)))
}

// UploadProfileImage reads the multipart field profile_picture.
func (h *UserHandler) UploadProfileImage(c fiber.Ctx) error {
	fh, err := c.FormFile("profile_picture")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", map[string]string{"profile_picture": "is required"}, err)
	}
	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid upload", nil, err)
	}
	defer f.Close()

	url, err := h.uc.UploadProfileImage(c.Context(), middleware.CallerFrom(c), fh.Filename, f)
	if err != nil {
		if errors.Is(err, useruc.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed",
				map[string]string{"profile_picture": "must be a .jpg, .jpeg or .png image"}, err)
		}
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ProfileImageResponse{ProfileImageURL: url})
}

func (h *UserHandler) RemoveProfileImage(c fiber.Ctx) error {
	url, err := h.uc.RemoveProfileImage(c.Context(), middleware.CallerFrom(c))
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ProfileImageResponse{ProfileImageURL: url})
}

func (h *UserHandler) GetApplicantProfile(c fiber.Ctx) error {
	poster, err := middleware.PosterFrom(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	prof, err := h.uc.GetApplicantProfile(c.Context(), poster, id)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(prof, h.uc.PictureURL(prof)))
}

func mapUserUsecaseError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
