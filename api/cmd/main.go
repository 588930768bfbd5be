package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/application/seminar"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/config"
	rediscache "github.com/baechuer/real-time-ressys/services/seminar-service/internal/infrastructure/caching/redis"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/transport/http/handlers"
	authmw "github.com/baechuer/real-time-ressys/services/seminar-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/transport/http/router"
)

// sysClock implements seminar.Clock using system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the service
type App struct {
	Config    *config.Config
	Server    *http.Server
	DB        *sql.DB
	Repo      *postgres.Repo
	Publisher *rabbitmq.Publisher
	Cache     *rediscache.Client
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_name", u.Path).
		Msg("db config loaded")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	app := NewApp(cfg, db)
	defer func() {
		if app.Publisher != nil {
			_ = app.Publisher.Close()
		}
		if app.Cache != nil {
			_ = app.Cache.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if app.Publisher != nil {
		app.Repo.StartOutboxWorker(ctx, app.Publisher)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.Server.Shutdown(shutdownCtx)
	}()

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}

func NewApp(cfg *config.Config, db *sql.DB) *App {
	// 1) Infrastructure
	repo := postgres.New(db)
	regs := postgres.NewRegistrations(db)

	var rabbit *rabbitmq.Publisher
	var pub seminar.EventPublisher = seminar.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit publisher init failed")
		}
		rabbit = p
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty, domain events will not be published")
	}

	var cache *rediscache.Client
	var svcCache seminar.Cache
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		c, err := rediscache.New(cfg.RedisURL)
		if err != nil {
			zlog.Warn().Err(err).Msg("redis unavailable, running without cache")
		} else {
			cache = c
			svcCache = c
			rdb = c.Raw()
		}
	}

	// 2) Application
	policy := seminar.Policy{
		GlobalUnregistrationDeadlineDays: cfg.GlobalUnregDeadlineDays,
		SkipCollisionCheck:               cfg.SkipCollisionCheck,
		ShowVacanciesThreshold:           cfg.ShowVacanciesThreshold,
	}
	svc := seminar.New(repo, regs, regs, sysClock{}, pub, svcCache, policy, cfg.CacheTTLStats, cfg.CacheTTLDetails)

	// 3) Transport
	h := handlers.NewSeminarsHandler(svc)
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer, nil)
	z := handlers.NewHealthHandler()

	// 4) HTTP server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.New(h, auth, z, rdb, cfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:    cfg,
		Server:    srv,
		DB:        db,
		Repo:      repo,
		Publisher: rabbit,
		Cache:     cache,
	}
}
