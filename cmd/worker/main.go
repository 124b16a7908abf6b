package main

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

	"github.com/redis/go-redis/v9"

	"knowvalue.app/server/common/id"
	"knowvalue.app/server/common/logger"
	"knowvalue.app/server/common/otel"
	"knowvalue.app/server/core/config"
	"knowvalue.app/server/core/db"
	"knowvalue.app/server/internal/metrics"
	"knowvalue.app/server/internal/payment"
	"knowvalue.app/server/internal/queue"
	"knowvalue.app/server/internal/service"
	"knowvalue.app/server/internal/store"
	"knowvalue.app/server/internal/worker"
)

const maxAttempts = 5

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger.Setup(cfg)

	slog.InfoContext(ctx, "knowvalue worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Events.RedisGroup,
		"consumer_name", cfg.Events.RedisConsumer)

	if !cfg.Events.Enabled() {
		slog.ErrorContext(ctx, "REDIS_URL is required for the worker")
		os.Exit(1)
	}

	// Different node ID than the server
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Events.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Events.RedisStream)

	consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
		Stream:       cfg.Events.RedisStream,
		Group:        cfg.Events.RedisGroup,
		Consumer:     cfg.Events.RedisConsumer,
		DLQStream:    cfg.Events.RedisDLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		MaxAttempts:  maxAttempts,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	services := service.NewServices(service.Deps{
		Stores:    store.NewStores(database.Queries()),
		TxRunner:  service.NewTxRunner(database),
		Publisher: queue.NewRedisProducer(redisClient, cfg.Events.RedisStream, slog.Default()),
		Gateway: payment.NewStripeGateway(payment.StripeConfig{
			SecretKey: cfg.Stripe.SecretKey,
			Currency:  cfg.Stripe.Currency,
		}),
		Metrics: m,
		Checkout: service.CheckoutConfig{
			AppBaseURL:     cfg.AppBaseURL,
			SessionTTL:     cfg.Marketplace.CheckoutSessionTTL,
			NegotiationTTL: cfg.Marketplace.NegotiationTTL,
		},
		WorkOS: cfg.WorkOS,
	})

	w := worker.New(consumer, services.Notifications(), m, worker.Config{MaxAttempts: maxAttempts})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:    cfg.Events.RedisStream,
		Group:     cfg.Events.RedisGroup,
		Consumer:  cfg.Events.RedisConsumer + "-reclaimer",
		MinIdle:   5 * time.Minute,
		Interval:  time.Minute,
		BatchSize: 10,
	}, consumer, w.Handle)

	var negotiations worker.NegotiationExpirer
	if cfg.Marketplace.SweepEnabled() {
		negotiations = services.Negotiations()
	}
	sweeper, err := worker.NewSweeper(cfg.Marketplace.SweepCron, negotiations, services.Auth(), m)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create sweeper", "error", err)
		os.Exit(1)
	}

	metricsServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "metrics server error", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go reclaimer.Run(ctx)
	go sweeper.Run(ctx)

	slog.InfoContext(ctx, "worker initialized and running",
		"sweep_cron", cfg.Marketplace.SweepCron,
		"negotiation_ttl", cfg.Marketplace.NegotiationTTL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	reclaimer.Stop()
	sweeper.Stop()
	w.Stop()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	case err := <-errCh:
		if err != nil {
			slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
		}
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "metrics server shutdown error", "error", err)
	}
	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
██╗  ██╗██╗   ██╗    ██╗    ██╗ ██████╗ ██████╗ ██╗  ██╗███████╗██████╗
██║ ██╔╝██║   ██║    ██║    ██║██╔═══██╗██╔══██╗██║ ██╔╝██╔════╝██╔══██╗
█████╔╝ ██║   ██║    ██║ █╗ ██║██║   ██║██████╔╝█████╔╝ █████╗  ██████╔╝
██╔═██╗ ╚██╗ ██╔╝    ██║███╗██║██║   ██║██╔══██╗██╔═██╗ ██╔══╝  ██╔══██╗
██║  ██╗ ╚████╔╝     ╚███╔███╔╝╚██████╔╝██║  ██║██║  ██╗███████╗██║  ██║
╚═╝  ╚═╝  ╚═══╝       ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝
`
