package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"weather-screen/pkg/log"
	"weather-screen/pkg/msg"
)

// SetupRequestLogger registers request ID generation and the request logging middleware.
// Health probes, API docs and the state stream under contextPath are not logged.
func SetupRequestLogger(e *echo.Echo, contextPath string) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		Skipper:      skipLogging(contextPath),
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error == nil {
				log.Info(msg.GetMessage("app.req-end", v.Method, v.URI, v.Status, v.Latency, v.RequestID), fields...)
				return nil
			}
			log.Error(msg.GetMessage("app.req-fail", v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error),
				append(fields, zap.Error(v.Error))...)
			return nil
		},
	}))
}

// skipLogging matches the polled and long-lived routes by exact path, the docs by prefix
func skipLogging(contextPath string) echomw.Skipper {
	contextPath = strings.TrimRight(contextPath, "/")
	exact := map[string]bool{
		contextPath + "/health":        true,
		contextPath + "/screen/stream": true,
	}
	docs := contextPath + "/swagger/"

	return func(c echo.Context) bool {
		path := c.Request().URL.Path
		return exact[path] || strings.HasPrefix(path, docs)
	}
}
