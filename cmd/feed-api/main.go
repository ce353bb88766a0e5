package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	fcache "github.com/radieske/sports-feed-api/internal/feed-api/cache"
	httpapi "github.com/radieske/sports-feed-api/internal/feed-api/http"
	"github.com/radieske/sports-feed-api/internal/feed-api/ingest"
	"github.com/radieske/sports-feed-api/internal/feed-api/publisher"
	"github.com/radieske/sports-feed-api/internal/feed-api/repo"
	sharedcache "github.com/radieske/sports-feed-api/internal/shared/cache"
	"github.com/radieske/sports-feed-api/internal/shared/config"
	"github.com/radieske/sports-feed-api/internal/shared/db"
	skafka "github.com/radieske/sports-feed-api/internal/shared/kafka"
	"github.com/radieske/sports-feed-api/internal/shared/logger"
	"github.com/radieske/sports-feed-api/internal/shared/metrics"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("env", cfg.Env))

	// Postgres + schema
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer migrateCancel()
	if err := db.Migrate(migrateCtx, pg); err != nil {
		log.Fatal("failed to apply schema", zap.Error(err))
	}
	log.Info("postgres connected")

	// Redis
	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("redis connected")

	// Kafka writer do tópico de mensagens aceitas
	writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicFeedMessages)
	defer writer.Close()
	log.Info("kafka writer ready", zap.String("topic", cfg.TopicFeedMessages))

	// Métricas Prometheus da ingestão
	ingested := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "feed_messages_ingested_total", Help: "mensagens aceitas por tipo"}, []string{"type"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "feed_messages_rejected_total", Help: "mensagens rejeitadas por motivo"}, []string{"reason"})
	oddErrors := prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_odd_update_errors_total", Help: "falhas por selection no UpdateOdds"})
	prometheus.MustRegister(ingested, rejected, oddErrors)

	// deps
	store := repo.NewPostgres(pg)
	rec := &ingest.Reconciler{
		Store:   store,
		Log:     log,
		BaseURL: cfg.PublicBaseURL,

		OnAccepted:       func(msgType string) { ingested.WithLabelValues(msgType).Inc() },
		OnRejected:       func(reason string) { rejected.WithLabelValues(reason).Inc() },
		OnSelectionError: func() { oddErrors.Inc() },
	}
	reader := &repo.ReadRepo{DB: pg}
	matchCache := fcache.New(redisClient)
	publ := publisher.NewKafkaPublisher(writer)

	// HTTP público
	api := httpapi.NewServer(log, rec, reader, matchCache, publ)
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}

	// metrics/health numa porta separada
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, map[string]metrics.Check{
		"postgres": func(ctx context.Context) error { return pg.PingContext(ctx) },
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	})
	defer metricsSrv.Close()
	log.Info("metrics/health server starting", zap.String("addr", metricsSrv.Addr))

	// shutdown gracioso (SIGINT/SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("feed-api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("api server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("feed-api stopped")
}
