package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/vendorboard/internal/config"
	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/core/tables"
	"github.com/JonMunkholm/vendorboard/internal/fixtures"
	"github.com/JonMunkholm/vendorboard/internal/logging"
	"github.com/JonMunkholm/vendorboard/internal/web"
)

func main() {
	// Load .env file if it exists; variables already set win.
	if err := config.LoadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		slog.Warn("could not read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	set, err := fixtures.LoadDir(cfg.Fixtures.Dir)
	if err != nil {
		slog.Error("failed to load fixtures", "dir", cfg.Fixtures.Dir, "error", err, "code", core.MapError(err).Code)
		os.Exit(1)
	}

	registry := core.NewRegistry()
	if err := tables.Register(registry, set); err != nil {
		slog.Error("failed to register tables", "error", err, "code", core.MapError(err).Code)
		os.Exit(1)
	}

	slog.Info("tables registered",
		"count", registry.TableCount(),
		"groups", len(registry.Groups()),
	)
	for _, group := range registry.Groups() {
		slog.Debug("table group", "group", group, "tables", len(registry.ByGroup(group)))
	}

	formatter, err := core.NewFormatter(cfg.Display.Locale)
	if err != nil {
		slog.Error("invalid display locale", "locale", cfg.Display.Locale, "error", err)
		os.Exit(1)
	}

	service := core.NewService(registry, core.ComputeSummary(tables.SummaryInput(set)), core.ServiceOptions{
		Formatter: formatter,
		PageSize:  cfg.Display.PageSize,
	})

	theme, _ := core.ParseTheme(cfg.Display.Theme)
	server := web.NewServer(service, web.Options{
		RequestTimeout:    cfg.Server.RequestTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		RateLimitEnabled:  cfg.Rate.Enabled,
		RequestsPerMinute: cfg.Rate.RequestsPerMinute,
		ExportsPerMinute:  cfg.Rate.ExportLimit,
		TrustedProxies:    cfg.Security.TrustedProxies,
		EnableCSP:         cfg.Security.EnableCSP,
		SecureCookies:     cfg.Security.SecureCookies,
		DefaultTheme:      theme,
	})

	// SIGINT/SIGTERM, or any job failing, stops the whole group.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		service.StartViewPruner(gctx, core.PruneConfig{
			ViewTTL:       cfg.Views.TTL,
			CheckInterval: cfg.Views.PruneInterval,
		})
		return nil
	})

	g.Go(func() error {
		if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", cfg.Server.Addr(), err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
