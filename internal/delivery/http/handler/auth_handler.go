package handler

import (
	"errors"

	"recruitment-portal/internal/delivery/http/dto"
	"recruitment-portal/internal/delivery/http/middleware"
	"recruitment-portal/internal/domain/user"
	"recruitment-portal/internal/pkg/response"
	ucauth "recruitment-portal/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type PictureURLer interface {
	PictureURL(u user.User) string
}

type AuthHandler struct {
	uc      ucauth.AuthUsecase
	picture PictureURLer
}

func NewAuthHandler(uc ucauth.AuthUsecase, picture PictureURLer) *AuthHandler {
	return &AuthHandler{uc: uc, picture: picture}
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, pair, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Username:             req.Username,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Role:                 req.Role,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	prof := dto.NewUserProfileResponse(usr, h.picture.PictureURL(usr))
	return response.Created(c, dto.AuthResponse{User: &prof, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, pair, err := h.uc.Login(c.Context(), ucauth.LoginInput{Identifier: req.Username, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	prof := dto.NewUserProfileResponse(usr, h.picture.PictureURL(usr))
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{User: &prof, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Refresh expects the refresh token as the bearer credential.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	pair, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		if errors.Is(err, ucauth.ErrRefreshTokenExpired) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		}
		if errors.Is(err, ucauth.ErrInvalidRefreshToken) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		if errors.Is(err, ucauth.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Username or email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid username or password", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
