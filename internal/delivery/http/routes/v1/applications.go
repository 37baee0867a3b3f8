package v1

import (
	"recruitment-portal/internal/delivery/http/middleware"
	"recruitment-portal/internal/domain/identity"

	"github.com/gofiber/fiber/v3"
)

func RegisterApplications(r, applicant, poster fiber.Router, h Handlers) {
	if h.Applications == nil {
		return
	}

	auth := h.AuthMiddleware.Middleware()

	r.Post("/jobs/:id/applications",
		auth,
		middleware.RequireRole(identity.RoleApplicant),
		h.ApplyLimiter.Middleware(middleware.ByCallerAndParam("id")),
		h.Applications.Submit,
	)
	r.Get("/applications/:id", auth, h.Applications.Get)
	r.Get("/applications/:id/documents/:kind", auth, h.Applications.Document)

	applicant.Get("/applications", h.Applications.ListMine)
	applicant.Post("/applications/:id/withdraw", h.Applications.Withdraw)
	if h.Dashboard != nil {
		applicant.Get("/dashboard", h.Dashboard.Applicant)
	}

	poster.Get("/jobs/:id/applications", h.Applications.ListForJob)
	poster.Put("/applications/:id/status", h.Applications.UpdateStatus)
	poster.Put("/applications/:id/feedback", h.Applications.AttachFeedback)
}
