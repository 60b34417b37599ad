package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/incident_map/internal/auth"
	"github.com/shenikar/incident_map/internal/cache"
	"github.com/shenikar/incident_map/internal/config"
	v1 "github.com/shenikar/incident_map/internal/handler/http/v1"
	"github.com/shenikar/incident_map/internal/live"
	"github.com/shenikar/incident_map/internal/repository"
	"github.com/shenikar/incident_map/internal/service"
	"github.com/shenikar/incident_map/internal/storage"
	"github.com/shenikar/incident_map/internal/webhook"
	"github.com/shenikar/incident_map/pkg/logger"
	"github.com/shenikar/incident_map/pkg/objectstore"
	"github.com/shenikar/incident_map/pkg/postgres"
	redisclient "github.com/shenikar/incident_map/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/incident_map/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Incident Map API
// @version 1.0
// @description Citizen incident map: reports with photo or video evidence, time-decayed severity, hashtag feeds and SOS alerts.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New("file://migrations", migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Подключение к объектному хранилищу
	minioClient, err := objectstore.NewMinioClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}
	mediaStorage := storage.NewMediaStorage(minioClient, cfg.S3Bucket, cfg.MediaURLTTL)
	log.WithField("bucket", cfg.S3Bucket).Info("Object storage is ready")

	// Хаб живой карты
	hub := live.NewHub(log)
	go hub.Run(ctx)

	// Издатель и воркер SOS-вебхуков
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient, cfg.IncidentCacheTTL)
	sosRepo := repository.NewSOSRepository(dbpool)
	subscriptionRepo := repository.NewSubscriptionRepository(dbpool)

	// Инициализация сервисов
	addressService := service.NewAddressService(cache.NewRedisStore(redisClient, "geo:"), log)
	services := v1.Services{
		Incidents:     service.NewIncidentService(incidentRepo, subscriptionRepo, mediaStorage, addressService, hub, log, cfg),
		Updates:       service.NewUpdateService(incidentRepo, mediaStorage, hub, log, cfg),
		Media:         service.NewMediaService(mediaStorage, log, cfg),
		SOS:           service.NewSOSService(sosRepo, log, cfg, webhookPublisher),
		Subscriptions: service.NewSubscriptionService(subscriptionRepo, log),
		Addresses:     addressService,
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(services, auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer), hub, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Метрики и Swagger UI
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	cancel()

	log.Info("Server gracefully stopped")
}
