package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tilsley/linkdesk/apps/server/internal/files"
	ghadapter "github.com/tilsley/linkdesk/apps/server/internal/files/adapters/github"
	"github.com/tilsley/linkdesk/apps/server/internal/platform/config"
	"github.com/tilsley/linkdesk/apps/server/internal/platform/github"
	"github.com/tilsley/linkdesk/apps/server/internal/platform/logger"
	"github.com/tilsley/linkdesk/apps/server/internal/platform/telemetry"
)

func main() {
	slog := logger.New()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Observability ---

	tel, err := telemetry.New(ctx, telemetry.Options{Enabled: cfg.OTelEnabled})
	if err != nil {
		slog.Error("telemetry init failed", "error", err)
		os.Exit(1) //nolint:gocritic // nothing to flush yet
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	// --- Adapters ---

	gh, err := github.NewClient(cfg.Auth)
	if err != nil {
		slog.Error("github client init failed", "error", err)
		os.Exit(1)
	}
	store := ghadapter.New(gh, cfg.Owner, cfg.Repo, cfg.Branch)

	// --- Service + HTTP ---

	registry, err := files.DefaultRegistry(cfg.LinksPath, cfg.ManualCheckPath)
	if err != nil {
		slog.Error("invalid tracked files", "error", err)
		os.Exit(1)
	}
	svc := files.NewService(store, registry, files.Options{
		Password:       cfg.Password,
		ValidateSyntax: cfg.ValidateSyntax,
	})

	router, err := newRouter(cfg, svc, tel.ServiceName, slog)
	if err != nil {
		slog.Error("router init failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("starting linkdesk",
		"port", cfg.Port,
		"repo", cfg.Owner+"/"+cfg.Repo,
		"branch", cfg.Branch,
		"files", []string{cfg.LinksPath, cfg.ManualCheckPath},
		"validateSyntax", cfg.ValidateSyntax,
		"devMode", cfg.DevMode,
	)
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		slog.Error("listen failed", "error", err)
		return
	}
	if err := serve(ctx, srv, ln); err != nil {
		slog.Error("server failed", "error", err)
		return
	}
	slog.Info("linkdesk stopped")
}

// shutdownTimeout bounds how long in-flight requests may drain after ctx is
// cancelled.
const shutdownTimeout = 10 * time.Second

// serve runs srv on ln until ctx is cancelled, then shuts it down and waits
// for in-flight requests to finish before returning.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
