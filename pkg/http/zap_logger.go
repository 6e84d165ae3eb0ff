package http

import (
	"go.uber.org/zap"
)

// ZapLogger writes client traffic to a zap logger. Bodies are only logged when LogBodies is set.
type ZapLogger struct {
	Logger    *zap.Logger
	LogBodies bool
}

// NewZapLogger creates an HTTPLogger backed by logger.
func NewZapLogger(logger *zap.Logger, logBodies bool) *ZapLogger {
	return &ZapLogger{Logger: logger, LogBodies: logBodies}
}

func (l *ZapLogger) LogRequest(method, url string, headers map[string]string, body string) {
	fields := []zap.Field{zap.String("method", method), zap.String("url", url)}
	if l.LogBodies && body != "" {
		fields = append(fields, zap.String("body", body))
	}
	l.Logger.Debug("HTTP request", fields...)
}

func (l *ZapLogger) LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
	}
	if l.LogBodies {
		fields = append(fields, zap.String("response_body", responseBody))
	}
	l.Logger.Info("HTTP response", fields...)
}

func (l *ZapLogger) LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.Error(err),
	}
	if l.LogBodies && responseBody != "" {
		fields = append(fields, zap.String("response_body", responseBody))
	}
	l.Logger.Warn("HTTP request failed", fields...)
}
