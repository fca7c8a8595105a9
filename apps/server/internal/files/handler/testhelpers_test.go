package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tilsley/linkdesk/apps/server/internal/files"
	ghadapter "github.com/tilsley/linkdesk/apps/server/internal/files/adapters/github"
	"github.com/tilsley/linkdesk/apps/server/internal/files/handler"
	"github.com/tilsley/linkdesk/apps/server/internal/platform/validation"
	"github.com/tilsley/linkdesk/schemas"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testPassword    = "s3cret"
	linksPath       = "source/_data/link.yml"
	manualCheckPath = "manual_check.json"
)

// ─── Test server builder ──────────────────────────────────────────────────────

type testServer struct {
	router *gin.Engine
	store  *ghadapter.InMem
}

func newService(t *testing.T, store files.ContentStore, opts files.Options) *files.Service {
	t.Helper()
	if opts.Password == "" {
		opts.Password = testPassword
	}
	reg, err := files.DefaultRegistry(linksPath, manualCheckPath)
	require.NoError(t, err)
	return files.NewService(store, reg, opts)
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithOptions(t, files.Options{})
}

func newTestServerWithOptions(t *testing.T, opts files.Options) *testServer {
	t.Helper()
	ts := &testServer{store: ghadapter.NewInMem()}
	r := gin.New()
	handler.RegisterRoutes(r, newService(t, ts.store, opts), slog.Default())
	ts.router = r
	return ts
}

func newTestServerWithValidation(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{store: ghadapter.NewInMem()}
	mw, err := validation.New(schemas.OpenAPISpec, slog.Default())
	require.NoError(t, err)
	r := gin.New()
	r.Use(mw)
	handler.RegisterRoutes(r, newService(t, ts.store, files.Options{}), slog.Default())
	ts.router = r
	return ts
}

func (ts *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
