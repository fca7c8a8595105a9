package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tilsley/linkdesk/apps/server/internal/files"
)

// Messages returned when the cause is not safe or useful to show the user.
const (
	msgFetchFailed  = "Error fetching file from GitHub"
	msgCommitFailed = "Error committing file to GitHub"

	msgCommitFieldsMissing = "content and sha are required"
)

// FileEntry is one option in the editor's file picker.
type FileEntry struct {
	File  string `json:"file"`
	Label string `json:"label"`
}

// FileResponse is the body of a successful GET /api/getFile.
type FileResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// CommitRequest is the body of POST /api/commitFile.
type CommitRequest struct {
	Content  string `json:"content"`
	SHA      string `json:"sha"`
	File     string `json:"file"`
	Password string `json:"password"`
}

// commitPayload is how a CommitRequest body is decoded, so an absent content
// or sha can be told apart from an empty one.
type commitPayload struct {
	Content  *string `json:"content"`
	SHA      *string `json:"sha"`
	File     string  `json:"file"`
	Password string  `json:"password"`
}

// CommitResponse is the body of a successful POST /api/commitFile. SHA is the
// version token of the content just written.
type CommitResponse struct {
	Success bool   `json:"success"`
	SHA     string `json:"sha,omitempty"`
}

// UnlockRequest is the body of POST /api/unlock.
type UnlockRequest struct {
	Password string `json:"password"`
}

// ListFiles handles GET /api/files: the tracked files in picker order.
func (h *Handler) ListFiles(c *gin.Context) {
	tracked := h.svc.Files()
	out := make([]FileEntry, 0, len(tracked))
	for _, f := range tracked {
		out = append(out, FileEntry{File: f.Key, Label: f.Label})
	}
	c.JSON(http.StatusOK, out)
}

// GetFile handles GET /api/getFile?file=<key>: current content and SHA.
func (h *Handler) GetFile(c *gin.Context) {
	key := c.Query("file")

	doc, err := h.svc.Get(c.Request.Context(), key)
	if err != nil {
		var notFound files.FileNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
			return
		}
		h.log.Error("failed to fetch file", "file", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgFetchFailed})
		return
	}

	c.JSON(http.StatusOK, FileResponse{Content: doc.Content, SHA: doc.SHA})
}

// CommitFile handles POST /api/commitFile: overwrite a tracked file.
func (h *Handler) CommitFile(c *gin.Context) {
	var req commitPayload
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		// A wrong password is reported as such even when other fields are malformed.
		var auth UnlockRequest
		if c.ShouldBindBodyWith(&auth, binding.JSON) == nil && h.svc.Unlock(auth.Password) != nil {
			h.log.Warn("commit rejected: incorrect password", "clientIp", c.ClientIP())
			c.JSON(http.StatusForbidden, gin.H{"error": files.ErrIncorrectPassword.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Content == nil || req.SHA == nil {
		if h.svc.Unlock(req.Password) != nil {
			h.log.Warn("commit rejected: incorrect password", "file", req.File, "clientIp", c.ClientIP())
			c.JSON(http.StatusForbidden, gin.H{"error": files.ErrIncorrectPassword.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msgCommitFieldsMissing})
		return
	}

	doc, err := h.svc.Commit(c.Request.Context(), files.CommitRequest{
		Key:      req.File,
		Content:  *req.Content,
		SHA:      *req.SHA,
		Password: req.Password,
	})
	if err != nil {
		var upstream files.UpstreamError
		var invalid files.InvalidContentError
		switch {
		case errors.Is(err, files.ErrIncorrectPassword):
			h.log.Warn("commit rejected: incorrect password", "file", req.File, "clientIp", c.ClientIP())
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		case errors.As(err, &upstream):
			h.log.Error("commit rejected upstream", "file", req.File, "status", upstream.StatusCode, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": upstream.Error()})
		default:
			h.log.Error("failed to commit file", "file", req.File, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgCommitFailed})
		}
		return
	}

	h.log.Info("file committed", "file", doc.File.Key, "path", doc.File.Path, "sha", doc.SHA)
	c.JSON(http.StatusOK, CommitResponse{Success: true, SHA: doc.SHA})
}

// Unlock handles POST /api/unlock. It checks the shared password so the editor
// can leave its locked state. Nothing is stored server-side.
func (h *Handler) Unlock(c *gin.Context) {
	var req UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Unlock(req.Password); err != nil {
		h.log.Warn("unlock rejected: incorrect password", "clientIp", c.ClientIP())
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
