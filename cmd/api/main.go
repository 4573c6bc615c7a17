package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	server "smart_travel/internal/adapters/http_server"
	"smart_travel/internal/adapters/inventory"
	"smart_travel/internal/adapters/mockinventory"
	"smart_travel/internal/adapters/observability"
	redisad "smart_travel/internal/adapters/redis"
	"smart_travel/internal/app"
	"smart_travel/internal/catalog"
	"smart_travel/internal/domain"
	"smart_travel/internal/shared"
	mysqlrepo "smart_travel/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable; cache calls will fail until it recovers")
	}

	src, err := candidateSource(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inventory setup failed")
	}
	engine := app.NewRecommender(src, catalog.Destinations(), app.WithWorkers(cfg.SearchWorkers))
	svc := app.NewSearchService(engine, repo, cache, cfg.CacheTTL, cfg.SearchTimeout)

	// http
	srv := server.New(server.Options{
		CORSOrigins:         cfg.CORSAllowedOrigin,
		SearchRatePerMinute: cfg.RateLimitPerMin,
		RequestTimeout:      cfg.SearchTimeout + 5*time.Second,
	})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("inventory", cfg.InventoryMode).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	_ = cache.Close()
	_ = db.Close()
	log.Info().Msg("API stopped")
}

// candidateSource picks the seeded mock generator or the remote inventory
// API behind a circuit breaker.
func candidateSource(cfg shared.Config) (domain.CandidateSource, error) {
	if cfg.InventoryMode != "http" {
		return mockinventory.New(cfg.MockSeed), nil
	}
	client, err := inventory.New(cfg.InventoryBaseURL, cfg.InventoryKey, cfg.InventoryRPS)
	if err != nil {
		return nil, err
	}
	return inventory.NewBreakerSource(client, inventory.DefaultBreakerSettings()), nil
}
