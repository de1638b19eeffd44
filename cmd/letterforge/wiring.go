package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/letterforge/internal/cache"
	"github.com/MikeSquared-Agency/letterforge/internal/config"
	"github.com/MikeSquared-Agency/letterforge/internal/hermes"
	"github.com/MikeSquared-Agency/letterforge/internal/llm"
	"github.com/MikeSquared-Agency/letterforge/internal/pipeline"
	"github.com/MikeSquared-Agency/letterforge/internal/store"
)

type app struct {
	svc    *pipeline.Service
	model  *llm.Ollama
	events *hermes.Client
	close  []func()
}

func (a *app) Close() {
	for i := len(a.close) - 1; i >= 0; i-- {
		a.close[i]()
	}
}

// buildApp connects every configured backend. PostgreSQL falls back to
// the in-memory store; Redis and NATS are skipped when unset.
func buildApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	a := &app{}

	var backend store.Backend
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		backend = store.NewMemory()
	} else {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.close = append(a.close, db.Close)
		if err := db.Migrate(ctx); err != nil {
			a.Close()
			return nil, err
		}
		logger.Info("database connected")
		backend = db
	}

	model, err := llm.NewOllama(cfg.OllamaURL, cfg.Model, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.model = model
	logger.Info("ollama client ready", "url", cfg.OllamaURL, "model", cfg.Model)

	a.svc = pipeline.New(backend, model, logger)

	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.close = append(a.close, func() { _ = client.Close() })
		a.svc.WithCache(cache.NewPatternCache(client, cfg.PatternCacheTTL), cache.Fingerprint)
		logger.Info("redis pattern cache enabled", "ttl", cfg.PatternCacheTTL)
	}

	if cfg.NatsURL != "" {
		client, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		a.close = append(a.close, client.Close)
		a.events = client
		a.svc.WithEvents(client)
		logger.Info("NATS connected", "url", cfg.NatsURL)
	}

	return a, nil
}
