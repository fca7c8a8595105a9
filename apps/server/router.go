package main

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tilsley/linkdesk/apps/server/internal/files"
	"github.com/tilsley/linkdesk/apps/server/internal/files/handler"
	"github.com/tilsley/linkdesk/apps/server/internal/platform/config"
	"github.com/tilsley/linkdesk/apps/server/internal/platform/middleware"
	"github.com/tilsley/linkdesk/apps/server/internal/platform/validation"
	"github.com/tilsley/linkdesk/schemas"
)

func newRouter(cfg config.Config, svc *files.Service, serviceName string, log *slog.Logger) (*gin.Engine, error) {
	router := gin.New()

	validator, err := validation.New(schemas.OpenAPISpec, log)
	if err != nil {
		return nil, fmt.Errorf("openapi validation middleware: %w", err)
	}

	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		middleware.Logger(log),
		middleware.Secure(cfg.DevMode),
		middleware.Gzip(),
	)
	if len(cfg.CORSOrigins) > 0 {
		cors, err := middleware.CORS(cfg.CORSOrigins)
		if err != nil {
			return nil, err
		}
		router.Use(cors)
	}
	router.Use(validator)

	handler.RegisterRoutes(router, svc, log)
	return router, nil
}
