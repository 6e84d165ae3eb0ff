package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"weather-screen/configs"
	"weather-screen/docs"
	"weather-screen/internal/application/controller"
	"weather-screen/internal/application/middleware"
	"weather-screen/internal/application/stream"
	"weather-screen/internal/application/view"
	"weather-screen/internal/domain/gateway/api"
	"weather-screen/internal/domain/usecase/health"
	"weather-screen/internal/domain/usecase/screen"
	"weather-screen/pkg/http"
	"weather-screen/pkg/log"
	"weather-screen/pkg/msg"
	"weather-screen/pkg/resource"
)

func main() {
	log.SetLevel(configs.Env.LogLevel)
	log.Info(msg.GetMessage("app.start"))
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init Gateway
	apiKey := resource.GetString("app.weather-api.key")
	if apiKey == "" {
		log.Warn("WEATHER_API_KEY is not set, every fetch will fail with an authorization error")
	}
	weatherGateway := api.NewWeatherGateway(
		resource.GetString("app.weather-api.base-url"),
		apiKey,
		resource.GetString("app.weather-api.lang"),
		http.ClientOptions{
			FollowRedirect:    true,
			ConnectionTimeout: timeout("app.weather-api.connection-timeout"),
			ReadTimeout:       timeout("app.weather-api.read-timeout"),
			Logger:            http.NewZapLogger(log.Named("weather-api"), resource.GetBool("app.weather-api.log-bodies")),
		},
	)

	// Init UseCase
	screenUseCase, err := screen.NewScreenUseCase(weatherGateway, screen.Config{
		Cities:           resource.GetStringSlice("app.screen.cities"),
		DefaultCity:      resource.GetString("app.screen.default-city"),
		SubscriberBuffer: resource.GetInt("app.screen.subscriber-buffer"),
	})
	if err != nil {
		log.Fatal("Invalid screen configuration", zap.Error(err))
	}
	healthUseCase := health.NewHealthUseCase(weatherGateway, screenUseCase)

	// Init infra
	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal("Failed to load screen templates", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	contextPath := resource.GetString("app.server.context-path")
	if contextPath == "" {
		contextPath = configs.Env.ContextPath
	}
	middleware.SetupRequestLogger(e, contextPath)
	docs.SwaggerInfo.BasePath = contextPath
	apiGroup := e.Group(contextPath)

	// Init Controller
	healthController := controller.NewHealthController(apiGroup, healthUseCase)
	screenController := controller.NewScreenController(apiGroup, contextPath, screenUseCase)
	screenStream := stream.NewScreenStream(apiGroup, screenUseCase, stream.Config{
		PingInterval: resource.GetDuration("app.stream.ping-interval"),
		WriteTimeout: resource.GetDuration("app.stream.write-timeout"),
	})

	// Init Routes
	healthController.InitHealthRoutes()
	screenController.InitScreenRoutes()
	screenStream.InitStreamRoutes()
	apiGroup.GET("/swagger/*", echoSwagger.WrapHandler)

	// Initial fetch for the default city
	screenUseCase.Start(ctx)

	port := resource.GetString("app.server.port")
	if port == "" {
		port = "8080"
	}

	// Start Routes
	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()
	log.Info(msg.GetMessage("app.started", port))

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stopping"))

	shutdownTimeout := resource.GetDuration("app.server.shutdown-timeout")
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	screenUseCase.Close()
	log.Info(msg.GetMessage("app.stopped"))
}

// timeout reads a client timeout; an explicit zero disables it.
func timeout(key string) time.Duration {
	if !resource.IsSet(key) {
		return 0
	}
	value := resource.GetDuration(key)
	if value == 0 {
		return -1
	}
	return value
}
