// Package config reads the server's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tilsley/linkdesk/apps/server/internal/platform/github"
)

// Config is the server's full runtime configuration.
type Config struct {
	Owner  string
	Repo   string
	Branch string
	Auth   github.Auth

	LinksPath       string
	ManualCheckPath string

	Password       string
	ValidateSyntax bool

	CORSOrigins []string
	DevMode     bool
	Port        string
	OTelEnabled bool
}

// Load reads a .env file from the working directory when one exists, then
// builds the Config from the process environment. Variables already set in
// the environment take precedence over the .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	envOr := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	var cfg Config
	var err error

	repo := envOr("GITHUB_REPO", "")
	if repo == "" {
		return Config{}, errors.New("GITHUB_REPO is required")
	}
	if cfg.Owner, cfg.Repo, err = github.SplitRepo(repo); err != nil {
		return Config{}, err
	}
	cfg.Branch = envOr("GITHUB_BRANCH", "")

	cfg.Auth = github.Auth{
		Token:          envOr("GITHUB_TOKEN", ""),
		PrivateKeyPath: envOr("GITHUB_PRIVATE_KEY_PATH", ""),
		BaseURL:        envOr("GITHUB_API_URL", ""),
	}
	if cfg.Auth.AppID, err = envInt(envOr("GITHUB_APP_ID", ""), "GITHUB_APP_ID"); err != nil {
		return Config{}, err
	}
	if cfg.Auth.InstallationID, err = envInt(envOr("GITHUB_INSTALLATION_ID", ""), "GITHUB_INSTALLATION_ID"); err != nil {
		return Config{}, err
	}

	cfg.LinksPath = envOr("FILE_1_PATH", "link.yml")
	cfg.ManualCheckPath = envOr("FILE_2_PATH", "manual_check.json")

	// Not trimmed: surrounding whitespace is part of the secret.
	cfg.Password = getenv("COMMIT_PASSWORD")
	if cfg.Password == "" {
		return Config{}, errors.New("COMMIT_PASSWORD is required")
	}

	if cfg.ValidateSyntax, err = envBool(envOr("VALIDATE_SYNTAX", "false"), "VALIDATE_SYNTAX"); err != nil {
		return Config{}, err
	}
	if cfg.DevMode, err = envBool(envOr("DEV_MODE", "false"), "DEV_MODE"); err != nil {
		return Config{}, err
	}
	if cfg.OTelEnabled, err = envBool(envOr("OTEL_ENABLED", "false"), "OTEL_ENABLED"); err != nil {
		return Config{}, err
	}

	cfg.CORSOrigins = splitList(envOr("CORS_ALLOWED_ORIGINS", ""))
	cfg.Port = envOr("PORT", "8080")

	return cfg, nil
}

func envInt(v, key string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(v, key string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
