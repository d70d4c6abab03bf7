package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vibetrip/vibetrip-api/auth/token"
	"github.com/vibetrip/vibetrip-api/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

const minimalYAML = `
name: vibetrip-api
auth:
  secret_key: test-secret
supabase:
  url: https://example.supabase.co
  anon_key: anon-key
`

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yml", minimalYAML)

	settings, err := config.Load("vibetrip-api", config.WithConfigFile(cfgPath))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if settings.Name != "vibetrip-api" {
		t.Errorf("expected name vibetrip-api, got %q", settings.Name)
	}
	if settings.Environment != "development" {
		t.Errorf("expected default environment, got %q", settings.Environment)
	}
	if !settings.Debug {
		t.Error("expected debug enabled in development")
	}
	if settings.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", settings.Server.Port)
	}
	if settings.Auth.AccessTokenExpireMinutes != 30 {
		t.Errorf("expected 30 minute default expiry, got %d", settings.Auth.AccessTokenExpireMinutes)
	}
}

func TestLoad_TokenConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yml", `
name: vibetrip-api
auth:
  secret_key: test-secret
  algorithm: HS512
  access_token_expire_minutes: 60
supabase:
  url: https://example.supabase.co
  anon_key: anon-key
`)
	settings, err := config.Load("vibetrip-api", config.WithConfigFile(cfgPath))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tokenCfg := settings.Auth.TokenConfig()
	if tokenCfg.Secret != "test-secret" {
		t.Errorf("expected secret carried over, got %q", tokenCfg.Secret)
	}
	if tokenCfg.Algorithm != token.HS512 {
		t.Errorf("expected HS512, got %s", tokenCfg.Algorithm)
	}
	if tokenCfg.DefaultTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %s", tokenCfg.DefaultTTL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yml", minimalYAML)

	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("SUPABASE_URL", "https://env.supabase.co")

	settings, err := config.Load("vibetrip-api", config.WithConfigFile(cfgPath))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if settings.Auth.SecretKey != "env-secret" {
		t.Errorf("expected env secret to win, got %q", settings.Auth.SecretKey)
	}
	if settings.Server.Port != 9000 {
		t.Errorf("expected port 9000 from env, got %d", settings.Server.Port)
	}
	if settings.Supabase.URL != "https://env.supabase.co" {
		t.Errorf("expected env supabase url, got %q", settings.Supabase.URL)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yml", minimalYAML)
	envPath := writeFile(t, dir, ".env", "ACCESS_TOKEN_EXPIRE_MINUTES=45\n")

	settings, err := config.Load("vibetrip-api",
		config.WithConfigFile(cfgPath),
		config.WithEnvFile(envPath),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("ACCESS_TOKEN_EXPIRE_MINUTES") })

	if settings.Auth.AccessTokenExpireMinutes != 45 {
		t.Errorf("expected 45 from .env, got %d", settings.Auth.AccessTokenExpireMinutes)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			"missing secret",
			`
name: vibetrip-api
supabase:
  url: https://example.supabase.co
  anon_key: anon-key
`,
			"secret is required",
		},
		{
			"missing supabase url",
			`
name: vibetrip-api
auth:
  secret_key: s
supabase:
  anon_key: anon-key
`,
			"url is required",
		},
		{
			"bad environment",
			`
name: vibetrip-api
environment: qa
auth:
  secret_key: s
supabase:
  url: https://example.supabase.co
  anon_key: anon-key
`,
			"environment must be one of",
		},
		{
			"bad algorithm",
			`
name: vibetrip-api
auth:
  secret_key: s
  algorithm: RS256
supabase:
  url: https://example.supabase.co
  anon_key: anon-key
`,
			"unsupported algorithm",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			cfgPath := writeFile(t, dir, "config.yml", tc.yaml)
			_, err := config.Load("vibetrip-api", config.WithConfigFile(cfgPath))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.want)
			}
		})
	}
}
