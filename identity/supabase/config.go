package supabase

import "errors"

// Config holds Supabase connection settings.
type Config struct {
	// URL is the Supabase project URL (e.g., https://xyz.supabase.co).
	URL string `mapstructure:"url"`

	// AnonKey is the public API key sent with every auth request.
	AnonKey string `mapstructure:"anon_key"`

	// ServiceKey is the service-role key (admin operations, optional).
	ServiceKey string `mapstructure:"service_key"`
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("supabase: url is required")
	}
	if c.AnonKey == "" {
		return errors.New("supabase: anon key is required")
	}
	return nil
}
