package main

import (
	"context"
	"log"

	"github.com/projecthub/projecthub-backend/config"
	"github.com/projecthub/projecthub-backend/internal/bootstrap"
	"github.com/projecthub/projecthub-backend/internal/jobs"
	projrepo "github.com/projecthub/projecthub-backend/internal/projects/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	if err := bootstrap.EnsureSchema(ctx, &cfg.Database); err != nil {
		log.Fatalf("schema: %v", err)
	}

	pool, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	backfill := jobs.NewBackfill(
		projrepo.NewProjectRepository(pool),
		bootstrap.NewEmbedder(cfg, redisClient),
	)
	backfill.Start()
	defer backfill.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "projecthub-backend",
		Config:      cfg,
		DB:          pool,
		Redis:       redisClient,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
