package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"knowvalue.app/server/common/id"
	"knowvalue.app/server/common/logger"
	"knowvalue.app/server/common/otel"
	"knowvalue.app/server/core/config"
	"knowvalue.app/server/core/db"
	"knowvalue.app/server/internal/blob"
	"knowvalue.app/server/internal/http/middleware"
	httprouter "knowvalue.app/server/internal/http/router"
	"knowvalue.app/server/internal/metrics"
	"knowvalue.app/server/internal/payment"
	"knowvalue.app/server/internal/queue"
	"knowvalue.app/server/internal/service"
	"knowvalue.app/server/internal/store"
)

const (
	limiterSweepPeriod = time.Minute
	limiterIdleTTL     = 10 * time.Minute
	poolStatsPeriod    = 15 * time.Second
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "knowvalue server starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	if cfg.MigrateOnStart {
		version, err := database.Migrate(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to migrate database", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "database migrated", "version", version)
	}

	producer, err := newProducer(ctx, cfg.Events)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up event producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	blobs, err := newBlobStore(cfg.Storage)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up blob storage", "error", err)
		os.Exit(1)
	}

	if !cfg.Stripe.CheckoutEnabled() || !cfg.Stripe.WebhookEnabled() {
		slog.WarnContext(ctx, "stripe is not fully configured; checkout or webhooks will fail",
			"checkout", cfg.Stripe.CheckoutEnabled(),
			"webhook", cfg.Stripe.WebhookEnabled())
	}
	gateway := payment.NewStripeGateway(payment.StripeConfig{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		Currency:      cfg.Stripe.Currency,
	})

	m := metrics.New()

	services := service.NewServices(service.Deps{
		Stores:    store.NewStores(database.Queries()),
		TxRunner:  service.NewTxRunner(database),
		Blobs:     blobs,
		Gateway:   gateway,
		Publisher: producer,
		Metrics:   m,
		Checkout: service.CheckoutConfig{
			AppBaseURL:     cfg.AppBaseURL,
			SessionTTL:     cfg.Marketplace.CheckoutSessionTTL,
			NegotiationTTL: cfg.Marketplace.NegotiationTTL,
		},
		WorkOS: cfg.WorkOS,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	stop := make(chan struct{})
	limiter := middleware.NewLimiterPool(cfg.Marketplace.RateLimitRPS, cfg.Marketplace.RateLimitBurst)
	go limiter.RunSweeper(limiterSweepPeriod, limiterIdleTTL, stop)
	go recordPoolStats(database, m, stop)

	router := setupRouter(cfg, services, m, limiter)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")
	close(stop)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, m *metrics.Metrics, limiter *middleware.LimiterPool) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics(m))

	routerCfg := httprouter.RouterConfig{
		DashboardURL: cfg.DashboardURL,
		IsProduction: cfg.IsProduction(),
		Metrics:      m,
		LimiterPool:  limiter,
	}
	if cfg.Storage.Driver != "oss" {
		routerCfg.LocalUploadsDir = cfg.Storage.LocalDir
	}
	httprouter.SetupRoutes(router, services, routerCfg)

	return router
}

// newProducer falls back to a no-op producer when no Redis is configured; notifications
// are then simply not generated.
func newProducer(ctx context.Context, cfg config.EventsConfig) (queue.Producer, error) {
	if !cfg.Enabled() {
		slog.WarnContext(ctx, "REDIS_URL not set; domain events are dropped")
		return queue.NewNoopProducer(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.RedisStream)
	return queue.NewRedisProducer(client, cfg.RedisStream, slog.Default()), nil
}

func newBlobStore(cfg config.StorageConfig) (blob.Store, error) {
	switch cfg.Driver {
	case "oss":
		if !cfg.OSSEnabled() {
			return nil, fmt.Errorf("STORAGE_DRIVER=oss requires OSS_ENDPOINT, OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET and OSS_BUCKET")
		}
		return blob.NewOSSStore(blob.OSSConfig{
			Endpoint:        cfg.OSSEndpoint,
			AccessKeyID:     cfg.OSSAccessKey,
			AccessKeySecret: cfg.OSSSecretKey,
			Bucket:          cfg.OSSBucket,
			PublicBaseURL:   cfg.PublicBaseURL,
		})
	case "local", "":
		return blob.NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Driver)
	}
}

func recordPoolStats(database *db.DB, m *metrics.Metrics, stop <-chan struct{}) {
	ticker := time.NewTicker(poolStatsPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.RecordDBPoolStats(database.Stat())
		case <-stop:
			return
		}
	}
}

const banner = `
██╗  ██╗███╗   ██╗ ██████╗ ██╗    ██╗██╗   ██╗ █████╗ ██╗     ██╗   ██╗███████╗
██║ ██╔╝████╗  ██║██╔═══██╗██║    ██║██║   ██║██╔══██╗██║     ██║   ██║██╔════╝
█████╔╝ ██╔██╗ ██║██║   ██║██║ █╗ ██║██║   ██║███████║██║     ██║   ██║█████╗
██╔═██╗ ██║╚██╗██║██║   ██║██║███╗██║╚██╗ ██╔╝██╔══██║██║     ██║   ██║██╔══╝
██║  ██╗██║ ╚████║╚██████╔╝╚███╔███╔╝ ╚████╔╝ ██║  ██║███████╗╚██████╔╝███████╗
╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚══╝╚══╝   ╚═══╝  ╚═╝  ╚═╝╚══════╝ ╚═════╝ ╚══════╝
`
