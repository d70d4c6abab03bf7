// Package config loads and validates application settings from a YAML
// file, a .env file, and environment variables, in ascending precedence.
package config

import (
	"fmt"
	"time"

	"github.com/vibetrip/vibetrip-api/auth/token"
	"github.com/vibetrip/vibetrip-api/identity/supabase"
	"github.com/vibetrip/vibetrip-api/logger"
	"github.com/vibetrip/vibetrip-api/observability"
	"github.com/vibetrip/vibetrip-api/server"
)

// Settings is the full application configuration.
type Settings struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging   logger.Config        `yaml:"logging" mapstructure:"logging"`
	Server    server.Config        `yaml:"server" mapstructure:"server"`
	Auth      AuthConfig           `yaml:"auth" mapstructure:"auth"`
	Supabase  supabase.Config      `yaml:"supabase" mapstructure:"supabase"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// AuthConfig holds first-party token settings. The expiry is configured
// in minutes to match the deployment environment convention.
type AuthConfig struct {
	SecretKey                string `yaml:"secret_key" mapstructure:"secret_key"`
	Algorithm                string `yaml:"algorithm" mapstructure:"algorithm"`
	AccessTokenExpireMinutes int    `yaml:"access_token_expire_minutes" mapstructure:"access_token_expire_minutes"`
}

// TokenConfig converts the auth settings into the signer configuration.
func (c *AuthConfig) TokenConfig() token.Config {
	cfg := token.Config{
		Secret:     c.SecretKey,
		Algorithm:  token.Algorithm(c.Algorithm),
		DefaultTTL: time.Duration(c.AccessTokenExpireMinutes) * time.Minute,
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills in zero-value fields across all sections.
func (s *Settings) ApplyDefaults() {
	if s.Environment == "" {
		s.Environment = "development"
	}
	if s.Environment == "development" {
		s.Debug = true
	}
	if s.Auth.Algorithm == "" {
		s.Auth.Algorithm = string(token.HS256)
	}
	if s.Auth.AccessTokenExpireMinutes == 0 {
		s.Auth.AccessTokenExpireMinutes = 30
	}
	s.Logging.ApplyDefaults()
	s.Server.ApplyDefaults()
	s.Telemetry.ApplyDefaults()
}

// Validate checks every section and returns the first problem found.
func (s *Settings) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("config: name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if s.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config: environment must be one of %v (got: %s)", validEnvs, s.Environment)
	}
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := s.Server.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	tokenCfg := s.Auth.TokenConfig()
	if err := tokenCfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := s.Supabase.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
