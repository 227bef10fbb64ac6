package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"weather-api/configs"
	"weather-api/internal/application/controller"
	"weather-api/internal/application/middleware"
	"weather-api/internal/domain/gateway/api"
	"weather-api/internal/domain/gateway/audit"
	"weather-api/internal/domain/gateway/storage"
	"weather-api/internal/domain/usecase/health"
	"weather-api/internal/domain/usecase/weather"
	infraaws "weather-api/internal/infra/aws"
	"weather-api/internal/observability"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
)

func main() {
	log.Info(msg.GetMessage("app.start"))

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	awsCfg, err := infraaws.NewConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to load AWS configuration: %v", err)
	}

	// Init infra
	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewRequestValidator()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler()
	middleware.SetupRequestLogger(e)

	apiGroup := e.Group("")

	// Init Gateways
	weatherGateway := api.NewOpenWeatherGateway(cfg)
	cacheGateway := storage.NewS3CacheGateway(infraaws.NewS3Client(awsCfg, cfg), cfg)
	auditGateway := audit.NewDynamoDBAuditGateway(infraaws.NewDynamoDBClient(awsCfg, cfg), cfg)

	// Init UseCases
	weatherUseCase := weather.NewWeatherUseCase(cfg, weatherGateway, cacheGateway, auditGateway)
	healthUseCase := health.NewHealthUseCase(cacheGateway, auditGateway)

	// Init Controllers
	rootController := controller.NewRootController(e)
	weatherController := controller.NewWeatherController(apiGroup, weatherUseCase)
	healthController := controller.NewHealthController(apiGroup, healthUseCase)

	// Init Routes
	rootController.InitRootRoutes()
	weatherController.InitWeatherRoutes()
	healthController.InitHealthRoutes()
	e.GET("/metrics", echo.WrapHandler(observability.Handler()))

	// Start server
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()
	log.Info(msg.GetMessage("app.started", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info(msg.GetMessage("app.stop"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}
}
