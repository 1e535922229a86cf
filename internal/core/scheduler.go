package core

// scheduler.go runs background maintenance for in-memory state.
//
// View state is never persisted, so the only job is pruning views that have
// been idle longer than the configured TTL. The scheduler is context-aware
// and stops on shutdown.

import (
	"context"
	"log/slog"
	"time"
)

// PruneConfig holds configuration for the view pruning scheduler.
type PruneConfig struct {
	ViewTTL       time.Duration // Idle time before a view is dropped (default: 24h)
	CheckInterval time.Duration // How often to run (default: 10m)
}

func (c PruneConfig) withDefaults() PruneConfig {
	if c.ViewTTL <= 0 {
		c.ViewTTL = 24 * time.Hour
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = 10 * time.Minute
	}
	return c
}

// StartViewPruner blocks, pruning idle views every CheckInterval until ctx
// is cancelled. Run it in its own goroutine.
func (s *Service) StartViewPruner(ctx context.Context, cfg PruneConfig) {
	cfg = cfg.withDefaults()
	slog.Info("view pruner started",
		"view_ttl", cfg.ViewTTL,
		"interval", cfg.CheckInterval,
	)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("view pruner stopped")
			return
		case <-ticker.C:
			s.runPruneJob(cfg)
		}
	}
}

func (s *Service) runPruneJob(cfg PruneConfig) {
	start := time.Now()
	pruned := s.views.Prune(cfg.ViewTTL)
	if pruned > 0 {
		slog.Info("pruned idle views",
			"views_pruned", pruned,
			"views_remaining", s.views.Len(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
