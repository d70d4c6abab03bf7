package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOption customizes Load.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path, skipping the search.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path, skipping the search.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.envFile = path }
}

// envBindings maps nested settings keys to the flat environment variable
// names used in deployment. Bound before unmarshal so variables win over
// file values.
var envBindings = map[string][]string{
	"name":                             {"APP_NAME"},
	"environment":                      {"ENVIRONMENT"},
	"debug":                            {"DEBUG"},
	"logging.level":                    {"LOG_LEVEL"},
	"logging.format":                   {"LOG_FORMAT"},
	"server.host":                      {"SERVER_HOST", "HOST"},
	"server.port":                      {"SERVER_PORT", "PORT"},
	"auth.secret_key":                  {"AUTH_SECRET_KEY", "SECRET_KEY"},
	"auth.algorithm":                   {"AUTH_ALGORITHM", "ALGORITHM"},
	"auth.access_token_expire_minutes": {"ACCESS_TOKEN_EXPIRE_MINUTES"},
	"supabase.url":                     {"SUPABASE_URL"},
	"supabase.anon_key":                {"SUPABASE_ANON_KEY", "SUPABASE_KEY"},
	"supabase.service_key":             {"SUPABASE_SERVICE_KEY"},
	"telemetry.enabled":                {"TELEMETRY_ENABLED"},
	"telemetry.endpoint":               {"OTEL_EXPORTER_OTLP_ENDPOINT", "TELEMETRY_ENDPOINT"},
	"telemetry.insecure":               {"TELEMETRY_INSECURE"},
}

// Load reads settings for a service. Precedence, lowest to highest:
// config.yml, .env file, process environment. The result has defaults
// applied and is validated.
func Load(serviceName string, opts ...LoaderOption) (*Settings, error) {
	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.envFile == "" {
		o.envFile = findFile(serviceName, ".env")
	}
	if o.envFile != "" && exists(o.envFile) {
		if err := godotenv.Load(o.envFile); err != nil {
			return nil, fmt.Errorf("config: loading env file %s: %w", o.envFile, err)
		}
	}

	v := viper.New()

	if o.configFile == "" {
		o.configFile = findFile(serviceName, "config.yml")
	}
	if o.configFile != "" && exists(o.configFile) {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", o.configFile, err)
		}
	}

	for key, envNames := range envBindings {
		args := append([]string{key}, envNames...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("config: binding %s: %w", key, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if settings.Name == "" {
		settings.Name = serviceName
	}

	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// findFile searches standard locations for a service file, closest first.
func findFile(serviceName, fileName string) string {
	searchPaths := []string{
		fmt.Sprintf("./cmd/%s/%s", serviceName, fileName),
		fmt.Sprintf("../cmd/%s/%s", serviceName, fileName),
		fmt.Sprintf("./%s", fileName),
		fmt.Sprintf("../%s", fileName),
	}
	for _, path := range searchPaths {
		if exists(path) {
			return path
		}
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
