package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	gogithub "github.com/google/go-github/v75/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilsley/linkdesk/pkg/gitblob"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testRepo = "acme/friends"

func newTestServer(t *testing.T) (*gin.Engine, *store) {
	t.Helper()
	s := newStore()
	seedRepo(s, testRepo, "link.yml", "manual_check.json")
	return newRouter(s, slog.New(slog.NewTextHandler(io.Discard, nil))), s
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func put(r *gin.Engine, path, content, sha string) *httptest.ResponseRecorder {
	return do(r, http.MethodPut, path, PutFileRequest{
		Message: "Update via web",
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
		SHA:     sha,
	})
}

// ─── GET contents ─────────────────────────────────────────────────────────────

func TestGetContents_ReturnsFileObject(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(r, http.MethodGet, "/repos/acme/friends/contents/manual_check.json?ref=main", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var obj FileObject
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &obj))
	assert.Equal(t, "file", obj.Type)
	assert.Equal(t, "manual_check.json", obj.Name)
	assert.Equal(t, "base64", obj.Encoding)
	assert.Equal(t, gitblob.SHA(sampleManualCheck), obj.SHA)

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(obj.Content, "\n", ""))
	require.NoError(t, err)
	assert.Equal(t, sampleManualCheck, string(decoded))
}

func TestGetContents_NotFound(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(r, http.MethodGet, "/repos/acme/friends/contents/missing.yml", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not Found")
}

// ─── PUT contents ─────────────────────────────────────────────────────────────

func TestPutContents_UpdateWithCurrentSHA(t *testing.T) {
	r, s := newTestServer(t)

	w := put(r, "/repos/acme/friends/contents/link.yml", "new", gitblob.SHA(sampleLinks))

	require.Equal(t, http.StatusOK, w.Code)
	var resp PutFileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, gitblob.SHA("new"), resp.Content.SHA)
	assert.NotEmpty(t, resp.Commit.SHA)
	assert.Equal(t, "Update via web", resp.Commit.Message)

	content, _ := s.getFile(testRepo, "link.yml")
	assert.Equal(t, "new", content)
	require.Len(t, s.recentCommits(10), 1)
}

func TestPutContents_StaleSHA_Conflict(t *testing.T) {
	r, s := newTestServer(t)

	w := put(r, "/repos/acme/friends/contents/link.yml", "new", "abc")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "link.yml does not match abc")
	content, _ := s.getFile(testRepo, "link.yml")
	assert.Equal(t, sampleLinks, content)
}

func TestPutContents_MissingSHA_Unprocessable(t *testing.T) {
	r, _ := newTestServer(t)

	w := put(r, "/repos/acme/friends/contents/link.yml", "new", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPutContents_CreatesMissingFile(t *testing.T) {
	r, s := newTestServer(t)

	w := put(r, "/repos/acme/friends/contents/data/new.json", "{}", "")

	assert.Equal(t, http.StatusCreated, w.Code)
	content, ok := s.getFile(testRepo, "data/new.json")
	require.True(t, ok)
	assert.Equal(t, "{}", content)
}

func TestPutContents_BadBase64(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(r, http.MethodPut, "/repos/acme/friends/contents/link.yml", PutFileRequest{
		Message: "m", Content: "%%%", SHA: gitblob.SHA(sampleLinks),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// ─── go-github compatibility ──────────────────────────────────────────────────

func TestGoGithubClient_RoundTrip(t *testing.T) {
	r, _ := newTestServer(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	gh := gogithub.NewClient(srv.Client())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base
	ctx := context.Background()

	fc, _, _, err := gh.Repositories.GetContents(ctx, "acme", "friends", "link.yml", nil)
	require.NoError(t, err)
	content, err := fc.GetContent()
	require.NoError(t, err)
	assert.Equal(t, sampleLinks, content)

	resp, _, err := gh.Repositories.UpdateFile(ctx, "acme", "friends", "link.yml", &gogithub.RepositoryContentFileOptions{
		Message: gogithub.Ptr("Update link.yml via web"),
		Content: []byte("edited"),
		SHA:     fc.SHA,
	})
	require.NoError(t, err)
	assert.Equal(t, gitblob.SHA("edited"), resp.Content.GetSHA())

	// Reusing the old sha is now stale.
	_, _, err = gh.Repositories.UpdateFile(ctx, "acme", "friends", "link.yml", &gogithub.RepositoryContentFileOptions{
		Message: gogithub.Ptr("again"),
		Content: []byte("edited twice"),
		SHA:     fc.SHA,
	})
	var apiErr *gogithub.ErrorResponse
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Response.StatusCode)
}

// ─── Dashboard ────────────────────────────────────────────────────────────────

func TestDashboard_ListsFilesAndCommits(t *testing.T) {
	r, _ := newTestServer(t)
	put(r, "/repos/acme/friends/contents/manual_check.json", `{"<x>":"正常"}`, gitblob.SHA(sampleManualCheck))

	w := do(r, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "link.yml")
	assert.Contains(t, body, "Update via web")
	assert.Contains(t, body, "&lt;x&gt;")
	assert.NotContains(t, body, "<x>")
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", nil).Code)
}
