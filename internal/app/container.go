package app

import (
	"context"
	"errors"
	"time"

	"recruitment-portal/internal/config"
	"recruitment-portal/internal/database"
	dbpostgres "recruitment-portal/internal/database/postgres"
	"recruitment-portal/internal/infrastructure/cache"
	"recruitment-portal/internal/infrastructure/mail"
	"recruitment-portal/internal/infrastructure/storage"
	"recruitment-portal/internal/pkg/logger"

	"go.uber.org/zap"
)

// Container owns the process-wide resources that need closing.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Redis  *cache.Redis
	Files  *storage.Local
	Mailer *mail.SMTP
}

func NewContainer(cfg config.Config) (*Container, error) {
	log, err := logger.New(cfg.App.AppName, cfg.App.Environment)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	files, err := storage.NewLocal(cfg.Media.Dir, cfg.Media.BaseURL, log.Named("storage"))
	if err != nil {
		_ = db.Close()
		_ = log.Sync()
		return nil, err
	}

	if !cfg.SMTP.Enabled() {
		log.Info("smtp not configured, email notifications disabled")
	}

	return &Container{
		Config: cfg,
		Logger: log,
		DB:     db,
		Redis:  cache.NewRedis(cfg.Redis, log.Named("redis")),
		Files:  files,
		Mailer: mail.NewSMTP(cfg.SMTP),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return errors.Join(errs...)
}
