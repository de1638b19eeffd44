package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/letterforge/internal/api"
	"github.com/MikeSquared-Agency/letterforge/internal/hermes"
	"github.com/MikeSquared-Agency/letterforge/internal/llm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := slog.Default()
		logger.Info("letterforge starting", "port", cfg.Port)

		a, err := buildApp(ctx, cfg, logger)
		if err != nil {
			logger.Error("startup failed", "error", err)
			return err
		}
		defer a.Close()

		if err := llm.WaitReady(ctx, cfg.OllamaURL, uint(cfg.ModelWaitAttempts), time.Second); err != nil {
			logger.Warn("ollama not reachable yet, continuing", "url", cfg.OllamaURL, "error", err)
		}

		if a.events != nil {
			// drop pattern sets cached for the owner's previous corpus
			err := a.events.OnSampleAnalyzed(func(ev hermes.SampleAnalyzed) {
				a.svc.InvalidatePatterns(ctx, ev.Owner)
			})
			if err != nil {
				return fmt.Errorf("subscribe %s: %w", hermes.SubjectSampleAnalyzed, err)
			}
		}

		srv := api.NewServer(cfg.Port, cfg.APIToken, a.svc, a.model, cfg.Model, logger)
		logger.Info("letterforge ready", "port", cfg.Port)

		if err := srv.Start(ctx); err != nil {
			logger.Error("HTTP server error", "error", err)
			return err
		}
		logger.Info("letterforge stopped")
		return nil
	},
}
