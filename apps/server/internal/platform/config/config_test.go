package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilsley/linkdesk/apps/server/internal/platform/config"
)

func lookup(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"GITHUB_REPO":     "acme/friends",
		"GITHUB_TOKEN":    "ghp_test",
		"COMMIT_PASSWORD": "s3cret",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := config.FromEnv(lookup(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.Owner)
	assert.Equal(t, "friends", cfg.Repo)
	assert.Empty(t, cfg.Branch)
	assert.Equal(t, "ghp_test", cfg.Auth.Token)
	assert.Empty(t, cfg.Auth.BaseURL)
	assert.Equal(t, "link.yml", cfg.LinksPath)
	assert.Equal(t, "manual_check.json", cfg.ManualCheckPath)
	assert.Equal(t, "s3cret", cfg.Password)
	assert.False(t, cfg.ValidateSyntax)
	assert.False(t, cfg.DevMode)
	assert.False(t, cfg.OTelEnabled)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Equal(t, "8080", cfg.Port)
}

func TestFromEnv_Overrides(t *testing.T) {
	env := baseEnv()
	env["GITHUB_BRANCH"] = "main"
	env["GITHUB_API_URL"] = "http://localhost:9090"
	env["GITHUB_APP_ID"] = "42"
	env["GITHUB_INSTALLATION_ID"] = "7"
	env["GITHUB_PRIVATE_KEY_PATH"] = "/keys/app.pem"
	env["FILE_1_PATH"] = "source/_data/link.yml"
	env["FILE_2_PATH"] = "data/manual_check.json"
	env["VALIDATE_SYNTAX"] = "true"
	env["DEV_MODE"] = "1"
	env["OTEL_ENABLED"] = "true"
	env["CORS_ALLOWED_ORIGINS"] = " https://a.example.com, ,https://b.example.com "
	env["PORT"] = "3000"

	cfg, err := config.FromEnv(lookup(env))
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.Branch)
	assert.Equal(t, "http://localhost:9090", cfg.Auth.BaseURL)
	assert.Equal(t, int64(42), cfg.Auth.AppID)
	assert.Equal(t, int64(7), cfg.Auth.InstallationID)
	assert.Equal(t, "/keys/app.pem", cfg.Auth.PrivateKeyPath)
	assert.Equal(t, "source/_data/link.yml", cfg.LinksPath)
	assert.Equal(t, "data/manual_check.json", cfg.ManualCheckPath)
	assert.True(t, cfg.ValidateSyntax)
	assert.True(t, cfg.DevMode)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "3000", cfg.Port)
}

func TestFromEnv_PasswordKeptVerbatim(t *testing.T) {
	env := baseEnv()
	env["COMMIT_PASSWORD"] = " pass phrase "

	cfg, err := config.FromEnv(lookup(env))
	require.NoError(t, err)
	assert.Equal(t, " pass phrase ", cfg.Password)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]string)
		wantErr string
	}{
		{"missing repo", func(e map[string]string) { delete(e, "GITHUB_REPO") }, "GITHUB_REPO is required"},
		{"malformed repo", func(e map[string]string) { e["GITHUB_REPO"] = "friends" }, "expected owner/repo"},
		{"missing password", func(e map[string]string) { delete(e, "COMMIT_PASSWORD") }, "COMMIT_PASSWORD is required"},
		{"bad app id", func(e map[string]string) { e["GITHUB_APP_ID"] = "abc" }, "GITHUB_APP_ID"},
		{"bad installation id", func(e map[string]string) { e["GITHUB_INSTALLATION_ID"] = "x" }, "GITHUB_INSTALLATION_ID"},
		{"bad bool", func(e map[string]string) { e["VALIDATE_SYNTAX"] = "sometimes" }, "VALIDATE_SYNTAX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			tt.mutate(env)
			_, err := config.FromEnv(lookup(env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
