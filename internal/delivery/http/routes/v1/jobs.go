package v1

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterJobs(r, poster fiber.Router, h Handlers) {
	if h.Jobs == nil {
		return
	}

	r.Get("/jobs", h.Jobs.HandleListJobs)
	r.Get("/jobs/latest", h.Jobs.HandleLatestJobs)
	r.Get("/jobs/:id", h.Jobs.HandleGetJob)

	poster.Get("/jobs", h.Jobs.HandleListOwned)
	poster.Post("/jobs", h.Jobs.HandleCreate)
	poster.Put("/jobs/:id", h.Jobs.HandleUpdate)
	poster.Delete("/jobs/:id", h.Jobs.HandleDelete)
	if h.Dashboard != nil {
		poster.Get("/dashboard", h.Dashboard.Poster)
	}
}
