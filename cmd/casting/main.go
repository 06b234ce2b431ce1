package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/casting-agency/casting-agency/internal/actors"
	"github.com/casting-agency/casting-agency/internal/app"
	"github.com/casting-agency/casting-agency/internal/auth"
	"github.com/casting-agency/casting-agency/internal/movies"
	"github.com/casting-agency/casting-agency/internal/observability"
	"github.com/casting-agency/casting-agency/internal/platform/cache"
	"github.com/casting-agency/casting-agency/internal/platform/db"
	"github.com/casting-agency/casting-agency/internal/rbac"
	"github.com/casting-agency/casting-agency/internal/seed"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("casting api stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	dbpool, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	if err := db.EnsureSchema(ctx, dbpool); err != nil {
		return err
	}
	if cfg.SeedOnStart {
		logger.Warn("SEED_ON_START set, resetting actors and movies")
		if err := seed.ResetAndSeed(ctx, dbpool); err != nil {
			return err
		}
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, JWKS cache stays in process", slog.Any("error", err))
		redisClient = nil
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	var jwksStore auth.DocumentStore
	if redisClient != nil {
		jwksStore = auth.NewRedisDocumentStore(redisClient, auth.DefaultJWKSCacheKey)
	}
	keySet := auth.NewKeySet(cfg.AuthJWKSURL, &http.Client{Timeout: 10 * time.Second}, cfg.AuthJWKSTTL, jwksStore)
	keySet.OnRefresh = func(err error) {
		metrics.JWKSRefreshed(err)
		if err != nil {
			logger.Error("jwks refresh failed", slog.Any("error", err))
		}
	}
	verifier := auth.NewVerifier(auth.Config{
		Issuer:     cfg.AuthIssuer,
		Audience:   cfg.AuthAudience,
		Algorithms: cfg.AuthAlgorithms,
	}, keySet)
	rbacMiddleware := rbac.Middleware{Verifier: verifier, Logger: logger, Metrics: metrics}

	actorsHandler := actors.NewHandler(logger, actors.NewService(actors.NewRepository(dbpool)), rbacMiddleware)
	moviesHandler := movies.NewHandler(logger, movies.NewService(movies.NewRepository(dbpool)), rbacMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		ActorsHandler: actorsHandler,
		MoviesHandler: moviesHandler,
		Metrics:       metrics,
	})

	servers := []*http.Server{{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}}
	if cfg.OpsAddr != "" {
		servers = append(servers, &http.Server{
			Addr: cfg.OpsAddr,
			Handler: app.NewOpsRouter(app.OpsParams{
				Metrics: metrics,
				Health:  dbpool.Ping,
			}),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		})
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, server := range servers {
		group.Go(func() error {
			logger.Info("starting http server", slog.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, server := range servers {
			if err := server.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
	return group.Wait()
}
