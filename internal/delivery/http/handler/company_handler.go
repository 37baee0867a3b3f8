package handler

import (
	"recruitment-portal/internal/delivery/http/dto"
	"recruitment-portal/internal/domain/company"
	"recruitment-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	info dto.CompanyResponse
}

func NewCompanyHandler(info company.Info) *CompanyHandler {
	return &CompanyHandler{info: dto.CompanyResponse{
		Name:         info.Name,
		Description:  info.Description,
		Email:        info.Email,
		Phone:        info.Phone,
		Address:      info.Address,
		LogoURL:      info.LogoURL,
		BannerURL:    info.BannerURL,
		FacebookURL:  info.FacebookURL,
		LinkedInURL:  info.LinkedInURL,
		TwitterURL:   info.TwitterURL,
		InstagramURL: info.InstagramURL,
	}}
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.info)
}
