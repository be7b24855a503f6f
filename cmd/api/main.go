package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minatoh/spa-desk/internal/config"
	bookingHandler "github.com/minatoh/spa-desk/internal/handler/booking"
	catalogHandler "github.com/minatoh/spa-desk/internal/handler/catalog"
	healthHandler "github.com/minatoh/spa-desk/internal/handler/health"
	queueHandler "github.com/minatoh/spa-desk/internal/handler/queue"
	reportHandler "github.com/minatoh/spa-desk/internal/handler/report"
	staffHandler "github.com/minatoh/spa-desk/internal/handler/staff"
	walkinHandler "github.com/minatoh/spa-desk/internal/handler/walkin"
	"github.com/minatoh/spa-desk/internal/repository"
	"github.com/minatoh/spa-desk/internal/repository/memory"
	"github.com/minatoh/spa-desk/internal/repository/postgres"
	"github.com/minatoh/spa-desk/internal/router"
	assignmentService "github.com/minatoh/spa-desk/internal/service/assignment"
	catalogService "github.com/minatoh/spa-desk/internal/service/catalog"
	queueService "github.com/minatoh/spa-desk/internal/service/queue"
	reportService "github.com/minatoh/spa-desk/internal/service/report"
	rosterService "github.com/minatoh/spa-desk/internal/service/roster"
	"github.com/minatoh/spa-desk/pkg/logger"
	"github.com/minatoh/spa-desk/pkg/messaging"
	redisBroker "github.com/minatoh/spa-desk/pkg/messaging/redis"
	"github.com/minatoh/spa-desk/pkg/metrics"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	m := metrics.NewMetrics("frontdesk")

	therapistRepo, clientRepo, serviceRepo, closeRepos, err := buildRepositories(cfg, log)
	if err != nil {
		log.Fatal(err, "failed to initialize storage")
	}
	defer closeRepos()

	publisher := buildPublisher(cfg, log, m)

	catalogSvc := catalogService.NewService(serviceRepo)
	rosterSvc := rosterService.NewService(therapistRepo, serviceRepo, log, cfg.FrontDesk)
	queueSvc := queueService.NewService(clientRepo, serviceRepo, publisher, m, log, cfg.FrontDesk)
	assignmentSvc := assignmentService.NewService(
		therapistRepo, clientRepo, serviceRepo, queueSvc, publisher, m, log, cfg.FrontDesk)
	reportSvc := reportService.NewService(clientRepo, therapistRepo)

	r := router.NewRouter(cfg,
		healthHandler.NewHandler(),
		walkinHandler.NewHandler(assignmentSvc, queueSvc),
		bookingHandler.NewHandler(queueSvc),
		queueHandler.NewHandler(queueSvc, assignmentSvc),
		staffHandler.NewHandler(rosterSvc, assignmentSvc),
		catalogHandler.NewHandler(catalogSvc),
		reportHandler.NewHandler(reportSvc),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}

// buildRepositories selects Postgres when a database host is configured and
// the in-memory store otherwise. The in-memory store can be seeded with a
// starter roster and catalog for local use.
func buildRepositories(cfg *config.Config, log *logger.Logger) (
	repository.TherapistRepository,
	repository.ClientRepository,
	repository.ServiceRepository,
	func(),
	error,
) {
	if cfg.Database.Host != "" {
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("using postgres storage", "host", cfg.Database.Host)
		return postgres.NewTherapistRepository(db),
			postgres.NewClientRepository(db),
			postgres.NewServiceRepository(db),
			func() { db.Close() },
			nil
	}

	store := memory.NewStore()
	if cfg.Server.Seed {
		if err := memory.Seed(context.Background(), store); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to seed store: %w", err)
		}
		log.Info("seeded in-memory store")
	}
	log.Info("using in-memory storage")
	return store.Therapists(), store.Clients(), store.Services(), func() {}, nil
}

// buildPublisher wires the Redis event sink when a URL is configured. Events
// are best-effort; with no broker they are dropped silently.
func buildPublisher(cfg *config.Config, log *logger.Logger, m *metrics.Metrics) messaging.Publisher {
	if cfg.Redis.URL == "" {
		return messaging.NewNopPublisher()
	}

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log.Zerolog())
	if err != nil {
		log.Fatal(err, "failed to connect to Redis")
	}
	log.Info("event publishing enabled")
	return messaging.NewPublisher(broker, log, m)
}
