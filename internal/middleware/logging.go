package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// LoggerKey for storing the request-scoped logger in the Gin context
const LoggerKey = "logger"

// Logging attaches a request-scoped logger carrying the trace context and
// request line, then emits one completion line per request.
func Logging(baseLogger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		sctx := trace.SpanFromContext(c.Request.Context()).SpanContext()

		logger := baseLogger.With(
			slog.String("trace_id", sctx.TraceID().String()),
			slog.String("span_id", sctx.SpanID().String()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)

		c.Set(LoggerKey, logger)

		c.Next()

		attrs := []any{
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.Int("size", c.Writer.Size()),
		}
		// Identity() runs after Logging, so the id is only present here,
		// on the way back out.
		if auth0ID, ok := c.Get(Auth0IDKey); ok {
			attrs = append(attrs, slog.Any("auth0_id", auth0ID))
		}
		logger.Info("request completed", attrs...)
	}
}

// GetLogger returns the request-scoped logger, or the process default when
// the middleware did not run.
func GetLogger(c *gin.Context) *slog.Logger {
	if logger, exists := c.Get(LoggerKey); exists {
		return logger.(*slog.Logger)
	}
	return slog.Default()
}
