package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
)

// Logger emits one structured access-log line per request under the "http"
// group. Request and response bodies are never logged since commit bodies
// carry the shared password.
func Logger(log *slog.Logger) gin.HandlerFunc {
	return sloggin.NewWithConfig(log.WithGroup("http"), sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
		WithTraceID:      true,
		WithSpanID:       true,
		Filters:          []sloggin.Filter{sloggin.IgnorePath("/healthz")},
	})
}
