package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"rapidaid-dashboard-service/internal/adapters/cache"
	"rapidaid-dashboard-service/internal/adapters/repositories"
	"rapidaid-dashboard-service/internal/adapters/resolver"
	"rapidaid-dashboard-service/internal/api"
	"rapidaid-dashboard-service/internal/config"
	"rapidaid-dashboard-service/internal/geolink"
	"rapidaid-dashboard-service/internal/platform/db"
	"rapidaid-dashboard-service/internal/platform/obs"
	"rapidaid-dashboard-service/internal/ports"
	"rapidaid-dashboard-service/internal/services"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or memory, Redis, HTTP resolver)
// behind ports and runs the HTTP server until SIGINT or SIGTERM.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := obs.NewMetrics(reg)
	if err != nil {
		return err
	}

	var (
		stations ports.StationRepository
		alerts   ports.AlertRepository
		sqlDB    *sql.DB
	)
	switch cfg.Store {
	case config.StorePostgres:
		sqlDB, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := repositories.InitSchema(ctx, sqlDB); err != nil {
			return err
		}
		stations = repositories.NewSQLStationRepository(sqlDB)
		alerts = repositories.NewSQLAlertRepository(sqlDB)
	default:
		mem := repositories.NewMemoryRepository()
		stations, alerts = mem, mem
	}

	linkCache, closeCache, err := openLinkCache(ctx, cfg, sqlDB)
	if err != nil {
		return err
	}
	defer closeCache()

	validator := geolink.NewValidator(cfg.Region, cfg.MapLinkHosts)
	linkResolver := resolver.NewHTTPLinkResolver(5*time.Second, services.ShortLinkHostnames(cfg.ShortLinkHosts)...)
	links := services.NewLinkService(validator, linkResolver, linkCache, metrics).
		WithShortLinkHosts(cfg.ShortLinkHosts)

	// The in-memory store starts empty, so load the demo stations for local runs.
	if cfg.Store == config.StoreMemory {
		if err := seedStations(ctx, cfg.SeedPath, stations, links); err != nil {
			log.Printf("seed skipped: %v", err)
		}
	}

	router := api.NewRouter(stations, alerts, links, metrics)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server listening addr=:%s store=%s region=%+v", cfg.Port, cfg.Store, cfg.Region)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openLinkCache prefers Redis, falls back to the Postgres table, and uses an
// in-process map when neither is available.
func openLinkCache(ctx context.Context, cfg config.Config, sqlDB *sql.DB) (ports.LinkCache, func(), error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open link cache: parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("open link cache: ping redis: %w", err)
		}

		log.Printf("link cache=redis addr=%s ttl=%s", opts.Addr, cfg.LinkCacheTTL)
		return cache.NewRedisLinkCache(client, cfg.LinkCacheTTL), func() { _ = client.Close() }, nil
	}

	if sqlDB != nil {
		log.Printf("link cache=postgres ttl=%s", cfg.LinkCacheTTL)
		return cache.NewSQLLinkCache(sqlDB, cfg.LinkCacheTTL), func() {}, nil
	}

	log.Println("link cache=memory")
	return cache.NewMemoryLinkCache(), func() {}, nil
}

func seedStations(ctx context.Context, path string, repo ports.StationRepository, links *services.LinkService) error {
	seeds, err := services.LoadStationSeeds(path)
	if err != nil {
		return err
	}

	n, err := services.SeedStations(ctx, seeds, repo, links)
	if err != nil {
		return err
	}
	log.Printf("seeded stations count=%d path=%s", n, path)
	return nil
}
