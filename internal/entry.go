// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/graflint/internal/api"
	"github.com/starford/graflint/internal/apperr"
	"github.com/starford/graflint/internal/archi"
	"github.com/starford/graflint/internal/catalog"
	"github.com/starford/graflint/internal/checks"
	"github.com/starford/graflint/internal/diag"
	"github.com/starford/graflint/internal/index"
	"github.com/starford/graflint/internal/storage"
)

// Run validates the configured repository. In the default single-run mode
// it reports once and returns apperr.ErrValidationFailed when any error
// was recorded. With watch or serve enabled it keeps running, re-validating
// on repository changes, until the context is cancelled or a signal
// arrives.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Structured logs go to stderr; stdout stays clean for the outcome line.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Debug("Configuration loaded",
		slog.String("repo_path", cfg.Repo.Path),
		slog.Bool("strict_ids", cfg.Repo.StrictIDs),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := storage.NewFS(cfg.Repo.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	var cache *index.Cache
	if cfg.Cache.Path != "" {
		cache, err = index.OpenCache(cfg.Cache.Path)
		if err != nil {
			logger.Warn("parse cache disabled", slog.String("error", err.Error()))
		} else {
			defer cache.Close()
		}
	}

	runner := app.runner
	if runner == nil {
		runner = archi.ExecRunner{}
	}

	validate := func(ctx context.Context) diag.Summary {
		var run diag.Batch

		// Structural gate: later phases assume a sound skeleton.
		structure := checks.Structure(store)
		run.Merge(structure)
		if structure.HasErrors() {
			return diag.Summarize(run)
		}

		cat, catErr := catalog.LoadCatalog(store.Root())
		if catErr != nil {
			run.Warnf(diag.CategoryParse, "Failed to read catalog: %s", catErr)
		}
		rules, rulesErr := catalog.LoadRules(store.Root())
		if rulesErr != nil {
			run.Warnf(diag.CategoryParse, "Failed to read relationship rules: %s", rulesErr)
		}

		ix, parsed, buildErr := index.Build(ctx, store, cache, logger)
		if buildErr != nil {
			run.Errorf(diag.CategoryParse, "Indexing failed: %s", buildErr)
			return diag.Summarize(run)
		}

		run.Merge(parsed)
		run.Merge(checks.Identity(ix, store, cat, cfg.Repo.StrictIDs))
		run.Merge(checks.References(ix, store))
		run.Merge(checks.Relationships(ix, store, rules))
		run.Merge(checks.Diagrams(ix, store, rules))

		if cfg.Repo.ArchiBin != "" {
			run.Merge(archi.SmokeTest(ctx, runner, cfg.Repo.ArchiBin, store.Root()))
		}

		return diag.Summarize(run)
	}

	if app.serve {
		app.watch = true
	}

	if !app.watch {
		sum := validate(ctx)
		diag.Report(os.Stdout, os.Stderr, sum)
		if !sum.Passed {
			return apperr.ErrValidationFailed
		}
		return nil
	}

	// Watch mode: validate now, then on every repository change.
	reports := api.NewReportStore()
	revalidate := func() {
		sum := validate(ctx)
		diag.Report(os.Stdout, os.Stderr, sum)
		reports.Set(sum)
		logger.Info("validation run complete",
			slog.Bool("passed", sum.Passed),
			slog.Int("errors", len(sum.Errors)),
			slog.Int("warnings", len(sum.Warnings)))
	}
	revalidate()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return index.Watch(gctx, store.Root(), logger, revalidate)
	})

	var httpServer *http.Server
	if app.serve {
		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Recoverer)

		r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		r.Mount("/api", api.NewRouter(reports, cfg.Auth.AuthEnabled(), cfg.Auth.Token))

		httpServer = &http.Server{
			Addr:    cfg.App.HTTP.Address(),
			Handler: r,
		}

		g.Go(func() error {
			logger.Info("Starting report server", slog.String("address", cfg.App.HTTP.Address()))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("report server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gctx.Done():
		}

		if httpServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("report server shutdown error", slog.String("error", err.Error()))
			}
		}

		return context.Canceled
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Stopped")
	return nil
}
