package v1

import (
	"recruitment-portal/internal/delivery/http/handler"
	"recruitment-portal/internal/delivery/http/middleware"
	"recruitment-portal/internal/domain/identity"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Jobs          *handler.JobsHandler
	Applications  *handler.ApplicationHandler
	Notifications *handler.NotificationHandler
	Dashboard     *handler.DashboardHandler
	Company       *handler.CompanyHandler

	AuthMiddleware *middleware.AuthMiddleware
	AuthLimiter    *middleware.RateLimiter
	ApplyLimiter   *middleware.RateLimiter
}

func Register(r fiber.Router, h Handlers) {
	if r == nil || h.AuthMiddleware == nil {
		return
	}

	authGroup := r.Group("/auth", h.AuthLimiter.Middleware(middleware.ByIP))
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.Refresh)

	r.Get("/company", h.Company.Get)

	auth := h.AuthMiddleware.Middleware()
	poster := r.Group("/poster", auth, middleware.RequireRole(identity.RolePoster))
	applicant := r.Group("/applicant", auth, middleware.RequireRole(identity.RoleApplicant))

	RegisterJobs(r, poster, h)
	RegisterUsers(r, poster, h)
	RegisterApplications(r, applicant, poster, h)
}
