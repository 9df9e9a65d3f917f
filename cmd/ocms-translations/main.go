// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/ocms-translations/internal/cache"
	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/content"
	"github.com/olegiv/ocms-translations/internal/handler"
	"github.com/olegiv/ocms-translations/internal/handler/api"
	"github.com/olegiv/ocms-translations/internal/logging"
	"github.com/olegiv/ocms-translations/internal/middleware"
	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/scheduler"
	"github.com/olegiv/ocms-translations/internal/store"
	"github.com/olegiv/ocms-translations/internal/translation"
	"github.com/olegiv/ocms-translations/internal/version"
	"github.com/olegiv/ocms-translations/internal/webhook"
)

// requestTimeout bounds every request except provider callbacks, whose
// imports may take longer.
const requestTimeout = 30 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "ocms-translations - translation workflow service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OTR_CALLBACK_SECRET      Callback signing secret (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OTR_DB_PATH              SQLite database path (default: ./data/translations.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OTR_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OTR_PUBLIC_URL           Public base URL used in callback URLs\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OTR_TRANSLATIONS_CONF    Translation field configuration (YAML)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OTR_DEFAULT_PROVIDER     supertext|deepl|gpt (default: supertext)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OTR_REDIS_URL            Redis URL for the directive cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Current()
		_, _ = fmt.Printf("%s %s (commit: %s, built: %s)\n", version.ComponentName, info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	conf, err := config.LoadTranslationsFile(cfg.TranslationsConf)
	if err != nil {
		return fmt.Errorf("loading translation config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.DoSeed {
		if err := seed(ctx, db); err != nil {
			return err
		}
	}

	directiveCache := cache.New(ctx, cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
	}, logger)
	defer func() { _ = directiveCache.Close() }()

	dispatcher := webhook.NewDispatcher(logger, webhook.DefaultConfig())
	dispatcher.OnDead = func(d webhook.Delivery, err error) {
		logger.Error("callback delivery abandoned",
			"category", model.EventCategoryCallback,
			"request_id", d.RequestID,
			"attempts", d.Attempt,
			"error", err)
	}
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	registry, err := buildProviders(cfg, conf, dispatcher, logger)
	if err != nil {
		return err
	}
	registry.Start(ctx)
	defer registry.Stop()
	slog.Info("translation providers ready", "providers", registry.Names(), "default", registry.DefaultProvider())

	svc := translation.NewService(translation.Options{
		DB:              db,
		Content:         content.NewRepository(db),
		Registry:        registry,
		Conf:            conf,
		Cache:           directiveCache,
		CacheTTL:        time.Duration(cfg.CacheTTL) * time.Second,
		CallbackSecret:  []byte(cfg.CallbackSecret),
		CallbackBaseURL: cfg.CallbackBaseURL(),
		Logger:          logger,
	})

	sched := scheduler.New(db, logger)
	if err := sched.AddStatusPolling(svc, cfg.PollSpec); err != nil {
		return fmt.Errorf("scheduling status polling: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	healthHandler := handler.NewHealthHandler(db, directiveCache)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	translationHandler := handler.NewTranslationHandler(svc, logger)
	prefix := "/" + strings.Trim(cfg.CallbackPrefix, "/")
	callbackLimiter := middleware.NewGlobalRateLimiter(cfg.CallbackRateRPS, cfg.CallbackRateBurst)
	r.Route(prefix+"/{id}", func(r chi.Router) {
		r.With(callbackLimiter.Middleware()).Post("/callback/", translationHandler.Callback)
		r.With(
			middleware.Timeout(requestTimeout),
			middleware.APIKeyAuth(db),
			middleware.RequirePermission(model.PermissionTranslationsWrite),
		).Post("/get-quote/", translationHandler.GetQuote)
	})

	apiHandler := api.NewHandler(svc, sched.Registry(), logger)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/status", apiHandler.Status)
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(db))
			r.Use(middleware.APIRateLimit(10, 20))
			apiHandler.Routes(r)
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      120 * time.Second, // callback imports run inside the request
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Current().String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// buildProviders registers every provider whose credentials are configured.
func buildProviders(cfg *config.Config, conf *config.Translations, dispatcher *webhook.Dispatcher, logger *slog.Logger) (*provider.Registry, error) {
	registry := provider.NewRegistry(cfg.DefaultProvider)

	if cfg.SupertextEnabled() {
		if err := registry.Register(provider.NewSupertext(conf, provider.ClientConfig{
			BaseURL:  cfg.SupertextURL,
			Username: cfg.SupertextUser,
			Password: cfg.SupertextToken,
			Timeout:  cfg.ProviderTimeout,
			RPS:      cfg.ProviderRPS,
		}, logger)); err != nil {
			return nil, err
		}
	}

	if cfg.DeeplEnabled() {
		if err := registry.Register(provider.NewDeepL(conf, provider.ClientConfig{
			BaseURL: cfg.DeeplURL,
			Timeout: cfg.ProviderTimeout,
			RPS:     cfg.ProviderRPS,
		}, logger)); err != nil {
			return nil, err
		}
	}

	if cfg.OpenAIEnabled() {
		gptCfg := provider.GPTConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Workers: cfg.OpenAIWorkers,
		}
		completer := provider.NewOpenAICompleter(gptCfg)
		if err := registry.Register(provider.NewGPT(conf, gptCfg, completer, dispatcher, logger)); err != nil {
			return nil, err
		}
	}

	if len(registry.Names()) == 0 {
		return nil, errors.New("no translation provider configured; set OTR_SUPERTEXT_USER/OTR_SUPERTEXT_TOKEN, OTR_DEEPL_URL or OTR_OPENAI_API_KEY")
	}
	if !registry.Has(registry.DefaultProvider()) {
		return nil, fmt.Errorf("default provider %q is not configured (available: %s)",
			registry.DefaultProvider(), strings.Join(registry.Names(), ", "))
	}
	return registry, nil
}

// seed creates the bootstrap admin and prints its API key once.
func seed(ctx context.Context, db *sql.DB) error {
	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		return fmt.Errorf("generating bootstrap key: %w", err)
	}
	created, err := store.Seed(ctx, db, store.SeedKey{
		Hash:        model.HashAPIKey(rawKey),
		Prefix:      prefix,
		Permissions: model.PermissionsToJSON(model.AllPermissions()),
	})
	if err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if created {
		_, _ = fmt.Fprintf(os.Stderr, "Bootstrap API key (shown once): %s\n", rawKey)
	}
	return nil
}
