package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/trailhead"
	"github.com/aretw0/trailhead/internal/adapters/memory"
	"github.com/aretw0/trailhead/internal/adapters/redis"
	"github.com/aretw0/trailhead/internal/config"
	"github.com/aretw0/trailhead/internal/nps"
	"github.com/aretw0/trailhead/internal/tools"
	httpAdapter "github.com/aretw0/trailhead/pkg/adapters/http"
	"github.com/aretw0/trailhead/pkg/observability"
	"github.com/aretw0/trailhead/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// minPruneInterval keeps short cache TTLs from turning the janitor into a
// busy loop.
const minPruneInterval = time.Minute

// app holds the wired components shared by the commands.
type app struct {
	registry *registry.Registry
	metrics  *observability.Metrics
	gatherer *prometheus.Registry
	cache    nps.Cache
	logger   *slog.Logger
	closers  []func() error

	// jobs run for the lifetime of serve.
	jobs          []func(context.Context) error
	pruneInterval time.Duration
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{logger: logger, pruneInterval: max(cfg.CacheTTL, minPruneInterval)}

	a.gatherer = prometheus.NewRegistry()
	a.gatherer.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(a.gatherer)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	a.metrics = metrics

	cache, err := a.newCache(cfg)
	if err != nil {
		return nil, err
	}
	a.cache = cache

	client := nps.NewClient(
		nps.WithAPIKey(cfg.APIKey),
		nps.WithBaseURL(cfg.BaseURL),
		nps.WithTimeout(cfg.Timeout),
		nps.WithCache(cache, cfg.CacheTTL),
		nps.WithUserAgent(trailhead.Name+"/"+trailhead.Version),
		nps.WithObserver(metrics.UpstreamRequest),
		nps.WithLogger(logger),
	)

	reg, err := tools.NewRegistry(client, tools.WithLogger(logger))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build tool registry: %w", err)
	}
	a.registry = reg
	return a, nil
}

func (a *app) newCache(cfg *config.Config) (nps.Cache, error) {
	if cfg.RedisURL == "" {
		a.logger.Debug("using in-memory response cache", "ttl", cfg.CacheTTL)
		cache := memory.NewCache()
		if cfg.CacheTTL > 0 {
			a.jobs = append(a.jobs, func(ctx context.Context) error {
				return cache.Janitor(ctx, a.pruneInterval)
			})
		}
		return cache, nil
	}
	cache, err := redis.New(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, cache.Close)
	a.logger.Info("using redis response cache", "ttl", cfg.CacheTTL)
	return cache, nil
}

func (a *app) handler() http.Handler {
	return httpAdapter.NewHandler(a.registry,
		httpAdapter.WithLogger(a.logger),
		httpAdapter.WithMetrics(a.metrics, a.gatherer),
		httpAdapter.WithServerInfo(trailhead.Name, trailhead.Version),
	)
}

// Close releases external connections.
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}
