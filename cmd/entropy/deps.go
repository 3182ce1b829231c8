package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/entropy/pkg/config"
	"github.com/ekaya-inc/entropy/pkg/database"
	"github.com/ekaya-inc/entropy/pkg/logging"
	"github.com/ekaya-inc/entropy/pkg/naming"
	"github.com/ekaya-inc/entropy/pkg/repositories"
	"github.com/ekaya-inc/entropy/pkg/slugs"
)

// Deps holds what commands need. The database is only opened by withDB.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Resolver *naming.Resolver
}

// withDeps loads config, builds the logger and resolver, then calls fn.
func withDeps(fn func(*Deps) error) error {
	cfg, err := config.Load(globalConfigPath, Version)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts, err := cfg.ResolverOptions()
	if err != nil {
		return fmt.Errorf("loading naming overrides: %w", err)
	}

	return fn(&Deps{
		Config:   cfg,
		Logger:   logger,
		Resolver: naming.NewResolver(opts),
	})
}

// dbDeps extends Deps with a PostgreSQL-backed slug allocator.
type dbDeps struct {
	*Deps
	DB        *database.DB
	Slugs     repositories.SlugRepository
	Allocator *slugs.Allocator
}

// withDB connects to PostgreSQL and closes the pool when fn returns.
func withDB(ctx context.Context, fn func(*dbDeps) error) error {
	return withDeps(func(d *Deps) error {
		connStr := d.Config.Database.ConnectionString()
		d.Logger.Debug("Connecting to database",
			zap.String("dsn", logging.SanitizeConnectionString(connStr)))

		db, err := database.NewConnection(ctx, &database.Config{
			URL:            connStr,
			MaxConnections: d.Config.Database.MaxConnections,
		})
		if err != nil {
			d.Logger.Error("Database connection failed", zap.String("error", logging.SanitizeError(err)))
			return fmt.Errorf("connecting to database: %s", logging.SanitizeError(err))
		}
		defer db.Close()

		repo := repositories.NewSlugRepository(db)
		alloc := slugs.NewAllocator(repo, d.Resolver, slugs.Config{
			MaxAttempts: d.Config.Naming.MaxSlugAttempts,
		}, d.Logger)

		return fn(&dbDeps{Deps: d, DB: db, Slugs: repo, Allocator: alloc})
	})
}
