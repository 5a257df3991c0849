package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/itsmeERRORr/esportscalendar/config"
	"github.com/itsmeERRORr/esportscalendar/internal/fx"
	"github.com/itsmeERRORr/esportscalendar/internal/handler"
	"github.com/itsmeERRORr/esportscalendar/internal/middleware"
	"github.com/itsmeERRORr/esportscalendar/internal/repository"
	"github.com/itsmeERRORr/esportscalendar/internal/service"
	"github.com/itsmeERRORr/esportscalendar/internal/session"
	"github.com/itsmeERRORr/esportscalendar/pkg/cache"
	"github.com/itsmeERRORr/esportscalendar/pkg/database"
	"github.com/itsmeERRORr/esportscalendar/pkg/logger"
	"github.com/itsmeERRORr/esportscalendar/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()
	log := logger.NewLogger("events-service")

	db := database.NewPostgresDB(cfg.DSN())

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		var err error
		redisClient, err = cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.WithField("error", err.Error()).Warn("redis unavailable, rate cache disabled")
			redisClient = nil
		}
	}

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	fxClient := fx.NewClient(cfg.FxAPIURL, cfg.FxHTTPTimeout, redisClient, cfg.FxCacheTTL, log)

	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, fxClient, publisher, log)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.WithField("status", v.Status).Infof("%s %s", v.Method, v.URI)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "events-service"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", session.Middleware())
	handler.NewEventHandler(svc).RegisterRoutes(api)

	log.Infof("Events Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
