package handler

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed web
var webFS embed.FS

func mustAsset(name string) []byte {
	b, err := webFS.ReadFile("web/" + name)
	if err != nil {
		panic(err)
	}
	return b
}

var (
	editorPage   = mustAsset("index.html")
	editorScript = mustAsset("app.js")
)

// Editor handles GET /, the single-page editor. The page holds the unlocked
// state and the password in memory only; a reload locks it again.
func (h *Handler) Editor(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", editorPage)
}

// EditorScript handles GET /app.js.
func (h *Handler) EditorScript(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/javascript; charset=utf-8", editorScript)
}
