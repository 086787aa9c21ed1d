package main

import (
	"context"
	"ehr-bundle-service/internal/app/config"
	"ehr-bundle-service/internal/app/contracts"
	"ehr-bundle-service/internal/app/delivery/http/controllers"
	"ehr-bundle-service/internal/app/delivery/http/middlewares"
	"ehr-bundle-service/internal/app/delivery/http/routers"
	"ehr-bundle-service/internal/app/drivers/database"
	"ehr-bundle-service/internal/app/drivers/logger"
	"ehr-bundle-service/internal/app/drivers/messaging"
	"ehr-bundle-service/internal/app/drivers/storage"
	"ehr-bundle-service/internal/app/services/bundles"
	"ehr-bundle-service/internal/app/services/reports"
	"ehr-bundle-service/internal/app/services/shared/archive"
	"ehr-bundle-service/internal/app/services/shared/locker"
	bundleEvents "ehr-bundle-service/internal/app/services/shared/messaging"
	"ehr-bundle-service/internal/app/services/shared/ratelimiter"
	"ehr-bundle-service/internal/app/services/shared/redis"
	minioStorage "ehr-bundle-service/internal/app/services/shared/storage"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/metrics"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          database.NewRedisClient(driverConfig, log),
		Logger:         log,
		Registry:       prometheus.NewRegistry(),
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	switch internalConfig.Bundle.Store {
	case constvars.BundleStorePostgres:
		bootstrap.PostgresDB = database.NewPostgresDB(driverConfig, log)
		_, err := database.Migrate(bootstrap.PostgresDB, driverConfig.PostgresDB.MigrationDir, migrate.Up, -1, log)
		if err != nil {
			log.Fatal("Error executing postgres migrations", zap.Error(err))
		}
	case constvars.BundleStoreMongo:
		bootstrap.MongoDB = database.NewMongoDB(driverConfig, log)
	default:
		log.Fatal("Unknown bundle store driver",
			zap.String(constvars.LoggingRepositoryDriverKey, internalConfig.Bundle.Store),
		)
	}

	if internalConfig.Archive.Enabled {
		if internalConfig.Archive.EncryptionKey == "" {
			log.Fatal("ARCHIVE_ENCRYPTION_KEY is required when the archive is enabled")
		}
		bootstrap.Minio = storage.NewMinio(driverConfig, log)
	}
	if internalConfig.RabbitMQ.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig, log)
	}

	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		log.Info("Server listening", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Error closing connections", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	// Metrics
	bootstrap.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bundleMetrics := metrics.New(bootstrap.Registry)

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(log, internalConfig)
	if internalConfig.Quota.IngestPerWindow > 0 {
		middlewares.QuotaLimiter = ratelimiter.NewIngestQuotaLimiter(
			redisRepository,
			log,
			internalConfig.Quota.WindowInSeconds,
			internalConfig.Quota.IngestPerWindow,
		)
	}

	// Bundle repository
	var bundleRepository contracts.BundleRepository
	if bootstrap.PostgresDB != nil {
		bundleRepository = bundles.NewBundlePostgresRepository(bootstrap.PostgresDB, log)
	} else {
		bundleRepository = bundles.NewBundleMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName, log)
	}

	// Archive
	var archiveService contracts.ArchiveService
	if bootstrap.Minio != nil {
		objectStorage := minioStorage.NewMinioStorage(bootstrap.Minio)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := objectStorage.EnsureBucket(ctx, internalConfig.Minio.BucketName)
		cancel()
		if err != nil {
			log.Fatal("Error preparing archive bucket", zap.Error(err))
		}
		archiveService = archive.NewArchiveService(objectStorage, internalConfig.Minio.BucketName, internalConfig.Archive.EncryptionKey, log)
	}

	// Events
	var eventPublisher contracts.EventPublisher
	if bootstrap.RabbitMQ != nil {
		publisher, err := bundleEvents.NewBundleEventPublisher(bootstrap.RabbitMQ, log, internalConfig.RabbitMQ.BundleEventQueue)
		if err != nil {
			log.Fatal("Error preparing bundle event publisher", zap.Error(err))
		}
		eventPublisher = publisher
	}

	// Bundle
	bundleUsecase := bundles.NewBundleUsecase(
		bundleRepository,
		redisRepository,
		lockerService,
		archiveService,
		eventPublisher,
		reports.NewVisitSummaryRenderer(),
		bundleMetrics,
		internalConfig,
		log,
	)
	bundleController := controllers.NewBundleController(log, bundleUsecase, internalConfig)

	routers.SetupRoutes(bootstrap.Router, internalConfig, log, middlewares, bundleController, bootstrap.Registry)
}
