package main

import (
	"context"
	"flag"
	"log"
	"time"

	"recruitment-portal/internal/app"
	"recruitment-portal/internal/config"
	"recruitment-portal/internal/database/migration"
	"recruitment-portal/internal/database/seeder"

	"go.uber.org/zap"
)

func main() {
	reset := flag.Bool("reset", false, "truncate all portal data before seeding")
	migrationsDir := flag.String("migrations", "", "load migrations from this directory instead of the embedded set")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()
	logger := c.Logger.Named("seeder")

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Default(logger)
	if *migrationsDir != "" {
		r = migration.FromDir(*migrationsDir, logger)
	}
	if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
		logger.Error("migration failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *reset {
		if err := seeder.Reset(ctx, c.DB); err != nil {
			logger.Error("reset failed", zap.Error(err))
			return
		}
		logger.Info("portal data reset")
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, c.DB); err != nil {
		logger.Error("seeding failed", zap.Error(err))
		return
	}
	logger.Info("seed complete",
		zap.String("poster", seeder.DemoPosterUsername),
		zap.String("applicant", seeder.DemoApplicantUsername),
	)
}
