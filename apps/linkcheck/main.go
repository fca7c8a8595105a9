package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tilsley/linkdesk/apps/linkcheck/internal/friends"
	"github.com/tilsley/linkdesk/apps/linkcheck/internal/probe"
	"github.com/tilsley/linkdesk/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.Error("linkcheck failed", "error", err)
		os.Exit(1) //nolint:gocritic // stop only releases the signal handler
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "linkcheck",
		Usage: "Probe every friend link in link.yml and write a status report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "links",
				Value:   "link.yml",
				Usage:   "Path to the friend-link config",
				EnvVars: []string{"LINKS_FILE"},
			},
			&cli.StringFlag{
				Name:    "manual",
				Value:   "manual_check.json",
				Usage:   "Path to manual status overrides (optional file)",
				EnvVars: []string{"MANUAL_CHECK_FILE"},
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "public/check_links.json",
				Usage:   "Where to write the report",
				EnvVars: []string{"REPORT_FILE"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Reachability API key; enables the second pass",
				EnvVars: []string{"API_KEY"},
			},
			&cli.StringFlag{
				Name:    "api-url",
				Value:   probe.DefaultAPIURL,
				Usage:   "Reachability API endpoint",
				EnvVars: []string{"API_URL"},
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Value:   10,
				Usage:   "Maximum probes in flight",
				EnvVars: []string{"CONCURRENCY"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   5 * time.Second,
				Usage:   "Per-request timeout",
				EnvVars: []string{"PROBE_TIMEOUT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	log := logging.NewWithLevel("linkcheck", c.String("log-level"))

	sections, err := friends.LoadLinks(c.String("links"))
	if err != nil {
		return err
	}
	manual, err := friends.LoadManualChecks(c.String("manual"))
	if err != nil {
		return err
	}

	urls := friends.URLs(sections)
	log.Info("checking links", "links", len(urls), "manualOverrides", len(manual), "apiPass", c.String("api-key") != "")

	checker := probe.New(probe.Config{
		Concurrency: c.Int("concurrency"),
		Timeout:     c.Duration("timeout"),
		APIKey:      c.String("api-key"),
		APIURL:      c.String("api-url"),
	}, log)
	unreachable, err := checker.Unreachable(c.Context, urls)
	if err != nil {
		return fmt.Errorf("check links: %w", err)
	}

	report := friends.BuildReport(sections, manual, unreachable)
	out := c.String("out")
	if err := friends.WriteReport(out, report); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	log.Info("report written", "path", out, "sections", len(report), "unreachable", len(unreachable))
	return nil
}
