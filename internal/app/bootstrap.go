package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"recruitment-portal/internal/config"
	"recruitment-portal/internal/database"
	"recruitment-portal/internal/database/migration"
	"recruitment-portal/internal/delivery/http/handler"
	"recruitment-portal/internal/delivery/http/middleware"
	"recruitment-portal/internal/delivery/http/routes"
	v1 "recruitment-portal/internal/delivery/http/routes/v1"
	"recruitment-portal/internal/domain/company"
	"recruitment-portal/internal/notify"
	"recruitment-portal/internal/pkg/jwt"
	"recruitment-portal/internal/repository"
	"recruitment-portal/internal/scheduler"
	appuc "recruitment-portal/internal/usecase/application"
	ucauth "recruitment-portal/internal/usecase/auth"
	"recruitment-portal/internal/usecase/dashboard"
	jobuc "recruitment-portal/internal/usecase/job"
	noteuc "recruitment-portal/internal/usecase/notification"
	useruc "recruitment-portal/internal/usecase/user"
	"recruitment-portal/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const shutdownGrace = 10 * time.Second

type App struct {
	Fiber *fiber.App

	hub        *ws.Hub
	subscriber *notify.Subscriber
	sweeper    *scheduler.DeadlineSweeper
	logger     *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(c *Container) (*App, error) {
	cfg := c.Config
	log := c.Logger

	f := fiber.New(fiber.Config{
		AppName:         cfg.App.AppName,
		BodyLimit:       cfg.App.BodyLimit,
		ErrorHandler:    middleware.ErrorHandler,
		StructValidator: middleware.NewStructValidator(),
	})
	registerGlobalMiddleware(f, log)

	userRepo := repository.NewPostgresUserRepository(c.DB)
	jobRepo := repository.NewPostgresJobRepository(c.DB)
	appRepo := repository.NewPostgresApplicationRepository(c.DB)
	noteRepo := repository.NewPostgresNotificationRepository(c.DB)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc, userRepo)

	hub := ws.NewHub(log.Named("ws"))
	dispatcher := notify.NewDispatcher(c.Redis, hub, c.Mailer, userRepo, log.Named("notify"))

	catalog := jobuc.NewCatalog(jobRepo, c.Redis, cfg.Redis.TTL, log.Named("jobs")).
		WithApplicationFiles(appRepo, c.Files)
	engine := appuc.NewService(appuc.Deps{
		Tx:            database.NewTxRunner(c.DB),
		Applications:  appRepo,
		Jobs:          jobRepo,
		Notifications: noteRepo,
		Files:         c.Files,
		Dispatcher:    dispatcher,
		Logger:        log.Named("applications"),
	})
	profiles := useruc.NewService(userRepo, c.Files, log.Named("users"))

	sweeper, err := scheduler.NewDeadlineSweeper(cfg.Scheduler.DeadlineSweepSpec, catalog, log.Named("scheduler"))
	if err != nil {
		return nil, err
	}

	api := v1.Handlers{
		Auth:          handler.NewAuthHandler(ucauth.NewAuthUsecase(userRepo, jwtSvc), profiles),
		User:          handler.NewUserHandler(profiles),
		Jobs:          handler.NewJobsHandler(catalog),
		Applications:  handler.NewApplicationHandler(engine, c.Files),
		Notifications: handler.NewNotificationHandler(noteuc.NewService(noteRepo, log.Named("inbox"))),
		Dashboard:     handler.NewDashboardHandler(dashboard.NewService(appRepo, jobRepo, noteRepo, log.Named("dashboard"))),
		Company:       handler.NewCompanyHandler(companyInfo(cfg.Company)),

		AuthMiddleware: authMw,
		AuthLimiter:    middleware.NewRateLimiter("auth", cfg.RateLimit.AuthPerMinute, time.Minute, c.Redis, log.Named("ratelimit")),
		ApplyLimiter:   middleware.NewRateLimiter("apply", cfg.RateLimit.ApplyPerMinute, time.Minute, c.Redis, log.Named("ratelimit")),
	}

	routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Redis),
		ws.NewHandler(hub, authMw, log.Named("ws")),
		cfg.Media.Dir,
		api,
	).Register(f)

	a := &App{Fiber: f, hub: hub, sweeper: sweeper, logger: log}
	if c.Redis.Available() {
		a.subscriber = notify.NewSubscriber(c.Redis, hub, log.Named("subscriber"))
	}
	return a, nil
}

// Bootstrap builds the app and starts its background workers. The returned
// cleanup stops the workers and releases the container.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := migration.Default(c.Logger.Named("migration")).Run(migCtx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	a, err := New(c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	a.start()

	cleanup := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		a.stop(ctx)
		return c.Close()
	}
	return a, cleanup, nil
}

func (a *App) start() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.hub.Run(ctx)
	}()

	if a.subscriber != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := a.subscriber.Run(ctx); err != nil {
				a.logger.Error("notification subscriber stopped", zap.Error(err))
			}
		}()
	}

	a.sweeper.Start()
}

func (a *App) stop(ctx context.Context) {
	a.sweeper.Stop(ctx)
	if a.cancel != nil {
		a.cancel()
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		a.logger.Warn("background workers did not stop in time")
	}
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(log.Named("http")).Middleware())
}

func companyInfo(cfg config.CompanyConfig) company.Info {
	return company.Info{
		Name:         cfg.Name,
		Description:  cfg.Description,
		Email:        cfg.Email,
		Phone:        cfg.Phone,
		Address:      cfg.Address,
		LogoURL:      cfg.LogoURL,
		BannerURL:    cfg.BannerURL,
		FacebookURL:  cfg.FacebookURL,
		LinkedInURL:  cfg.LinkedInURL,
		TwitterURL:   cfg.TwitterURL,
		InstagramURL: cfg.InstagramURL,
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
