package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tilsley/linkdesk/apps/server/internal/files"
)

// Handler translates HTTP requests into calls on the files.Service.
type Handler struct {
	svc *files.Service
	log *slog.Logger
}

// RegisterRoutes mounts the editor page and its API onto the given Gin engine.
func RegisterRoutes(r *gin.Engine, svc *files.Service, log *slog.Logger) {
	h := &Handler{svc: svc, log: log}

	r.GET("/", h.Editor)
	r.GET("/app.js", h.EditorScript)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/files", h.ListFiles)
	api.GET("/getFile", h.GetFile)
	api.POST("/commitFile", h.CommitFile)
	api.POST("/unlock", h.Unlock)
}
