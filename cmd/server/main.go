package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/croakcroak22/webhook/internal/config"
	"github.com/croakcroak22/webhook/internal/delivery"
	"github.com/croakcroak22/webhook/internal/metrics"
	"github.com/croakcroak22/webhook/internal/models"
	"github.com/croakcroak22/webhook/internal/scheduler"
	"github.com/croakcroak22/webhook/internal/storage/postgres"
	"github.com/croakcroak22/webhook/internal/webhook"
	"github.com/croakcroak22/webhook/middleware"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	dbCfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		logger.Fatal("failed to load database config", zap.Error(err))
	}

	db, err := postgres.ConnectDB(dbCfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	if err := postgres.MigrateModels(db, &models.Webhook{}, &models.WebhookLog{}); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	metrics.Init()

	webhookRepo := postgres.NewWebhookRepository(db)
	logRepo := postgres.NewLogRepository(db)

	client := delivery.NewHTTPClient(cfg.DeliveryTimeout)
	clock := scheduler.RealClock{}

	executor := scheduler.NewExecutor(webhookRepo, logRepo, client, clock, logger)
	selector := scheduler.NewSelector(webhookRepo, logRepo, clock)
	loop := scheduler.NewLoop(selector, executor, cfg.TickInterval, cfg.MaxInflight, logger)

	service := webhook.NewWebhookService(webhookRepo, logRepo, executor, logger)
	handler := webhook.NewWebhookHandler(service)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.ErrorHandler())

	api := router.Group("/api/webhooks")
	{
		api.POST("", handler.Create)
		api.GET("", handler.List)
		api.DELETE("", handler.DeleteAll)
		api.GET("/trash", handler.ListTrash)
		api.DELETE("/trash", handler.EmptyTrash)
		api.GET("/logs/all", handler.AllLogs)
		api.GET("/:id", handler.Get)
		api.PUT("/:id", handler.Update)
		api.DELETE("/:id", handler.Delete)
		api.POST("/:id/execute", handler.Execute)
		api.POST("/:id/cancel", handler.Cancel)
		api.POST("/:id/restore", handler.Restore)
		api.DELETE("/:id/purge", handler.Purge)
		api.GET("/:id/logs", handler.Logs)
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC()})
	})

	apiServer := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: metricsMux,
	}

	go func() {
		logger.Info("metrics server started", zap.String("port", cfg.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("metrics server error", zap.Error(err))
		}
	}()

	if err := loop.Start(); err != nil {
		logger.Fatal("scheduler start failed", zap.Error(err))
	}

	go func() {
		logger.Info("api server started", zap.String("port", cfg.APIPort))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("api server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	sig := <-stop
	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	loop.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown failed", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown failed", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
