// Package main is the entry point of the application
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vanishbin/vanishbin/internal/api"
	"github.com/vanishbin/vanishbin/internal/config"
	"github.com/vanishbin/vanishbin/internal/durable"
	"github.com/vanishbin/vanishbin/internal/models"
	"github.com/vanishbin/vanishbin/internal/observe"
	"github.com/vanishbin/vanishbin/internal/services"
	"github.com/vanishbin/vanishbin/internal/slug"
	"github.com/vanishbin/vanishbin/internal/stores/bolt"
	"github.com/vanishbin/vanishbin/internal/stores/memory"
)

var version string

func shutDown(shutdowns ...func() error) chan error {
	errChan := make(chan error)

	var wg sync.WaitGroup
	for _, shutdown := range shutdowns {
		wg.Add(1)
		go func(shutdown func() error) {
			defer wg.Done()
			if err := shutdown(); err != nil {
				errChan <- err
			}
		}(shutdown)
	}

	go func() {
		wg.Wait()
		close(errChan)
	}()

	return errChan
}

// meteredCleaner counts swept rows on top of the store's own cleanup.
type meteredCleaner struct {
	store   services.ExpiredPasteCleaner
	metrics *observe.Metrics
}

func (c meteredCleaner) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	removed, err := c.store.DeleteExpired(ctx, now)
	if removed > 0 {
		c.metrics.ExpiredSwept.Add(float64(removed))
	}
	return removed, err
}

type backend struct {
	store services.PasteStore
	close func() error
}

func openBackend(ctx context.Context, settings *config.Settings, idgen services.IDGenerator, clock services.Clock) (*backend, error) {
	switch settings.Backend {
	case config.BackendPostgres:
		db, err := durable.OpenDatabaseClient(ctx, settings.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := models.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return &backend{
			store: services.NewPasteManager(db, &models.PasteModel{}, idgen, clock),
			close: db.Close,
		}, nil
	case config.BackendBolt:
		store, err := bolt.Open(settings.BoltPath, idgen, clock)
		if err != nil {
			return nil, fmt.Errorf("open bolt: %w", err)
		}
		return &backend{store: store, close: store.Close}, nil
	case config.BackendMemory:
		return &backend{
			store: memory.New(idgen, clock),
			close: func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", settings.Backend)
	}
}

func listen(addr string, handler http.Handler, logger *slog.Logger) *http.Server {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", addr, "version", version)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	return httpServer
}

func run() error {
	settings, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	logger := observe.NewLogger(settings.LogLevel, settings.LogFormat)
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	metrics := observe.NewMetrics(registry)

	idgen, err := slug.New(settings.IDFormat, settings.NanoIDLength)
	if err != nil {
		return err
	}

	clock := services.SystemClock{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openBackend(ctx, settings, idgen, clock)
	if err != nil {
		return err
	}

	if settings.JanitorInterval > 0 {
		go services.RunJanitor(ctx, meteredCleaner{store: store.store, metrics: metrics}, clock, settings.JanitorInterval, logger)
	}

	var limiter *api.RateLimiter
	if settings.RateLimit > 0 {
		limiter = api.NewRateLimiter(rate.Limit(settings.RateLimit), settings.RateLimitBurst, 15*time.Minute)
	}

	router := api.NewRouter(api.Config{
		Store:          store.store,
		Clock:          clock,
		Metrics:        metrics,
		Gatherer:       registry,
		Logger:         logger,
		MaxContentSize: settings.MaxContentSize,
		MaxTTLSeconds:  settings.MaxTTLSeconds,
		MaxViewsCap:    settings.MaxViewsCap,
		MaxListLimit:   settings.MaxListLimit,
		RateLimiter:    limiter,
		TrustProxy:     settings.TrustProxy,
	})

	httpServer := listen(settings.Addr, router, logger)

	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGTERM, syscall.SIGINT)
	<-termChan
	logger.Info("shutting down")
	cancel()

	shutdownErrors := shutDown(func() error {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*5)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	}, store.close)

	var errored bool
	for {
		select {
		case err, ok := <-shutdownErrors:
			if !ok {
				if errored {
					return fmt.Errorf("shutdown failed")
				}
				return nil
			}
			if err != nil {
				errored = true
				logger.Error("shutdown", "error", err)
			}
		case <-time.After(time.Second * 15):
			return fmt.Errorf("force quit")
		}
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
