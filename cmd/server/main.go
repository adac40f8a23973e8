package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"singate/internal/audit"
	httpapi "singate/internal/http"
	jwttoken "singate/internal/jwt_token"
	"singate/internal/platform/config"
	"singate/internal/platform/httpserver"
	"singate/internal/platform/logger"
	platformmetrics "singate/internal/platform/metrics"
	platformredis "singate/internal/platform/redis"
	"singate/internal/ratelimit"
	"singate/internal/validation/handler"
	"singate/internal/validation/metrics"
	"singate/internal/validation/service"
	"singate/internal/validation/store"
)

const auditInboxSize = 1024

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal feature packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Validation record store: Postgres when configured, in-memory ring
	// otherwise.
	validationStore, closeStore, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// Optional Redis, shared by the rate limiter.
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Audit pipeline: Kafka when brokers are configured, in-memory sink
	// otherwise. The worker drains the inbox off the request path.
	publisher, err := newPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer publisher.Close()
	auditInbox := make(chan audit.Event, auditInboxSize)
	worker := audit.NewWorker(publisher, auditInbox, log)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "singate", "singate-admin")

	validationMetrics := metrics.New()
	validationService := service.NewService(validationStore, auditInbox, validationMetrics, log, []byte(cfg.DigestKey))
	validationHandler := handler.New(validationService, log, jwtService, cfg.RecentLimit)

	limiter := ratelimit.NewMiddleware(
		newRateLimitStore(redisClient),
		log,
		cfg.RateLimit.Limit,
		cfg.RateLimit.Window,
		ratelimit.WithDisabled(cfg.RateLimit.Disabled),
	)

	checks := map[string]httpapi.HealthChecker{"store": validationStore}
	if redisClient != nil {
		checks["redis"] = redisClient
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:     log,
		Validation: validationHandler,
		RateLimit:  limiter,
		Metrics:    platformmetrics.New(),
		Checks:     checks,
	})
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting singate", "addr", cfg.Addr)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return worker.Run(groupCtx)
	})

	group.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = group.Wait()
	if errors.Is(err, context.Canceled) {
		// The signal context cancels every goroutine on shutdown; that is
		// the expected stop path, not a failure.
		err = nil
	}
	log.Info("singate stopped")
	return err
}

// newStore picks the validation record backend. The returned closer is a
// no-op for the in-memory ring.
func newStore(ctx context.Context, cfg config.Config, log *slog.Logger) (store.Store, func(), error) {
	if cfg.PostgresURL == "" {
		log.Info("no postgres configured, using in-memory record store")
		return store.NewInMemoryStore(0), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	pg := store.NewPostgresStore(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info("using postgres record store")
	return pg, func() { db.Close() }, nil
}

// newPublisher picks the audit sink.
func newPublisher(ctx context.Context, cfg config.Config, log *slog.Logger) (audit.Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info("no kafka brokers configured, audit events stay in memory")
		return audit.NewMemoryPublisher(), nil
	}

	publisher, err := audit.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
	if err != nil {
		return nil, err
	}
	log.Info("publishing audit events to kafka", "topic", cfg.AuditTopic)
	return publisher, nil
}

// newRateLimitStore shares request counts via Redis when available and falls
// back to per-replica counting.
func newRateLimitStore(redisClient *platformredis.Client) ratelimit.Store {
	if redisClient != nil {
		return ratelimit.NewRedisStore(redisClient.Client)
	}
	return ratelimit.NewInMemoryStore()
}
