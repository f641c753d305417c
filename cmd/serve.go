package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/human_translator/internal/apiclient"
	"github.com/Vovarama1992/human_translator/internal/config"
	"github.com/Vovarama1992/human_translator/internal/delivery"
	"github.com/Vovarama1992/human_translator/internal/domain"
	"github.com/Vovarama1992/human_translator/internal/error_notificator"
	"github.com/Vovarama1992/human_translator/internal/infra"
	"github.com/Vovarama1992/human_translator/internal/ports"
	"github.com/Vovarama1992/human_translator/internal/speech"
	"github.com/Vovarama1992/human_translator/internal/stubapi"
	"github.com/Vovarama1992/human_translator/internal/webui"
)

const service = "human_translator"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the translator web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {

	// =========================================================================
	// CONFIG / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zl := newLogger()

	// =========================================================================
	// ERROR NOTIFICATION / METRICS
	// =========================================================================

	errService := error_notificator.NewService(error_notificator.NewInfra(zl))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := apiclient.RegisterMetrics(reg); err != nil {
		return err
	}

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	client, err := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(zl),
	)
	if err != nil {
		return err
	}

	var cache ports.LanguageCache = infra.NewMemoryLanguageCache(cfg.LangCacheTTL)
	if cfg.RedisURL != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		rdb, err := infra.NewRedisClient(pingCtx, cfg.RedisURL)
		cancel()
		if err != nil {
			zl.Log(logger.LogEntry{
				Level:   "warn",
				Message: "redis unavailable, caching languages in memory",
				Error:   err,
				Service: service,
			})
		} else {
			defer rdb.Close()
			cache = infra.NewRedisLanguageCache(rdb, cfg.LangCacheTTL)
		}
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	healthService := domain.NewHealthService(client, errService)
	languageService := domain.NewLanguageService(client, cache, errService)
	translationService := domain.NewTranslationService(client, errService)
	speechService := speech.NewService(client, client, errService)

	msgs, err := webui.NewMessages(cfg.UILocale)
	if err != nil {
		return err
	}

	ctrl := webui.NewController(
		healthService,
		languageService,
		translationService,
		speechService,
		msgs,
		webui.Defaults{Source: cfg.DefaultSourceLang, Target: cfg.DefaultTargetLang},
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	h, err := delivery.NewHandler(ctrl, zl, cfg.HealthPollInterval)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	delivery.RegisterRoutes(r, h, cfg.RateLimitPerMinute, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// =========================================================================
	// START SERVER
	// =========================================================================

	return listen(ctx, zl, ":"+cfg.Port, r)
}

func newStubCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local stand-in for the translation API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = config.StubPort()
			}
			zl := newLogger()
			return listen(cmd.Context(), zl, ":"+port, stubapi.New(stubapi.DefaultConfig(), zl).Handler())
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (defaults to $STUB_PORT or 5000)")
	return cmd
}

// listen serves until ctx is cancelled or the process is interrupted.
func listen(ctx context.Context, zl *logger.ZapLogger, addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Log(logger.LogEntry{Level: "info", Message: "listening at " + addr, Service: service})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	zl.Log(logger.LogEntry{Level: "info", Message: "shutting down", Service: service})
	return srv.Shutdown(shutdownCtx)
}
