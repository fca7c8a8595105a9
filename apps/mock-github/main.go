package main

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/tilsley/linkdesk/pkg/gitblob"
	"github.com/tilsley/linkdesk/pkg/logging"
)

// FileObject is the Contents API representation of a single file.
type FileObject struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding,omitempty"`
	Content  string `json:"content,omitempty"`
}

// PutFileRequest is the body of PUT /repos/:owner/:repo/contents/*path.
type PutFileRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha"`
	Branch  string `json:"branch"`
}

// CommitObject is the commit half of a PUT response.
type CommitObject struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

// PutFileResponse is the body of a successful PUT.
type PutFileResponse struct {
	Content FileObject   `json:"content"`
	Commit  CommitObject `json:"commit"`
}

func main() {
	log := logging.New("mock-github")
	s := newStore()

	repoKey := envOr("MOCK_REPO", "acme/friends")
	linksPath := envOr("FILE_1_PATH", "link.yml")
	manualCheckPath := envOr("FILE_2_PATH", "manual_check.json")
	seedRepo(s, repoKey, linksPath, manualCheckPath)
	log.Info("seeded repo", "repo", repoKey, "files", []string{linksPath, manualCheckPath})

	r := newRouter(s, log)

	port := envOr("PORT", "9090")
	log.Info("mock-github starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newRouter(s *store, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), sloggin.New(log.WithGroup("http")))
	registerHTMLRoutes(r, s)
	registerAPIRoutes(r, s, log)
	return r
}

func registerHTMLRoutes(r *gin.Engine, s *store) {
	r.GET("/", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, renderDashboard(s.listFiles(), s.recentCommits(20)))
	})
}

func registerAPIRoutes(r *gin.Engine, s *store, log *slog.Logger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Mirrors GET /repos/:owner/:repo/contents/:path for files. The ref query
	// parameter is accepted and ignored: the mock keeps a single branch.
	r.GET("/repos/:owner/:repo/contents/*path", func(c *gin.Context) {
		repoKey := c.Param("owner") + "/" + c.Param("repo")
		p := strings.TrimPrefix(c.Param("path"), "/")

		content, ok := s.getFile(repoKey, p)
		if !ok {
			notFound(c)
			return
		}
		c.JSON(http.StatusOK, fileObject(p, content, true))
	})

	r.PUT("/repos/:owner/:repo/contents/*path", func(c *gin.Context) {
		repoKey := c.Param("owner") + "/" + c.Param("repo")
		p := strings.TrimPrefix(c.Param("path"), "/")

		var req PutFileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Problems parsing JSON"})
			return
		}
		if req.Message == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid request.\n\n\"message\" wasn't supplied."})
			return
		}
		raw, err := base64.StdEncoding.DecodeString(req.Content)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "content is not valid Base64"})
			return
		}

		cm, created, rej := s.putFile(repoKey, p, string(raw), req.SHA, req.Message)
		if rej != nil {
			log.Warn("update rejected", "repo", repoKey, "path", p, "status", rej.StatusCode, "sha", req.SHA)
			c.JSON(rej.StatusCode, gin.H{"message": rej.Message})
			return
		}

		log.Info("file committed", "repo", repoKey, "path", p, "sha", cm.SHA, "created", created, "message", req.Message)
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, PutFileResponse{
			Content: fileObject(p, string(raw), false),
			Commit:  CommitObject{SHA: cm.Commit, Message: cm.Message},
		})
	})
}

func fileObject(p, content string, withContent bool) FileObject {
	obj := FileObject{
		Type: "file",
		Name: p[strings.LastIndex(p, "/")+1:],
		Path: p,
		SHA:  gitblob.SHA(content),
		Size: len(content),
	}
	if withContent {
		obj.Encoding = "base64"
		obj.Content = encodeWrapped(content)
	}
	return obj
}

// encodeWrapped base64-encodes content with a newline every 60 characters, as
// the real API does.
func encodeWrapped(content string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(content))
	var b strings.Builder
	for len(enc) > 60 {
		b.WriteString(enc[:60])
		b.WriteByte('\n')
		enc = enc[60:]
	}
	b.WriteString(enc)
	b.WriteByte('\n')
	return b.String()
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"message":           "Not Found",
		"documentation_url": "https://docs.github.com/rest/repos/contents#get-repository-content",
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
