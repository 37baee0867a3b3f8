package routes

import (
	"path/filepath"

	v1 "recruitment-portal/internal/delivery/http/routes/v1"
	"recruitment-portal/internal/delivery/http/handler"
	"recruitment-portal/internal/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"
)

// PublicMediaDirs are served without authentication. Application uploads
// live elsewhere under the media root and go through the documents route.
var PublicMediaDirs = []string{"profile_pics", "images"}

// WebSocketHandler upgrades authenticated notification streams.
type WebSocketHandler interface {
	HandleNotificationsWS(c fiber.Ctx) error
}

type Registry struct {
	health   *handler.HealthHandler
	ws       WebSocketHandler
	mediaDir string
	api      v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, ws WebSocketHandler, mediaDir string, api v1.Handlers) *Registry {
	return &Registry{health: health, ws: ws, mediaDir: mediaDir, api: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.health != nil {
		app.Get("/health", r.health.Health)
	}
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	if r.ws != nil {
		app.Get("/ws/notifications", r.ws.HandleNotificationsWS)
	}
	if r.mediaDir != "" {
		for _, dir := range PublicMediaDirs {
			app.Use("/media/"+dir, static.New(filepath.Join(r.mediaDir, dir)))
		}
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.api)
}
