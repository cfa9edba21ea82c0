package app

import (
	"context"
	"log"
	"time"

	"talenthub/internal/config"
	"talenthub/internal/database"
	dbpostgres "talenthub/internal/database/postgres"
	"talenthub/internal/infrastructure/cache"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast on schema drift before any repository touches these tables.
	for table, columns := range map[string][]string{
		"jobs":         {"id", "recruiter_id", "status", "max_applicants", "applicants_count"},
		"applications": {"id", "job_id", "worker_id", "status", "interview_id", "decline_reason"},
		"offers":       {"id", "job_id", "worker_id", "recruiter_id", "status"},
	} {
		if err := database.EnsureTableColumns(ctx, db, table, columns...); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
