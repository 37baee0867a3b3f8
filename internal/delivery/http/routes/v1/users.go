package v1

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r, poster fiber.Router, h Handlers) {
	if h.User == nil {
		return
	}

	me := r.Group("/me", h.AuthMiddleware.Middleware())
	me.Get("", h.User.GetMe)
	me.Put("", h.User.UpdateMe)
	me.Post("/profile-image", h.User.UploadProfileImage)
	me.Delete("/profile-image", h.User.RemoveProfileImage)

	poster.Get("/applicants/:id", h.User.GetApplicantProfile)

	if h.Notifications != nil {
		notes := r.Group("/notifications", h.AuthMiddleware.Middleware())
		notes.Get("", h.Notifications.List)
		notes.Post("/:id/read", h.Notifications.MarkRead)
	}
}
