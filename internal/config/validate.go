package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := c.Geocoder.validate(); err != nil {
		return fmt.Errorf("geocoder: %w", err)
	}

	if c.Map.Zoom < 0 || c.Map.Zoom > 20 {
		return fmt.Errorf("map.zoom must be within 0..20 (got %d)", c.Map.Zoom)
	}

	if c.RateLimit.UploadPerMinute < 0 || c.RateLimit.DownloadPerMinute < 0 {
		return fmt.Errorf("rate_limit values must be >= 0")
	}

	c.Download.AllowedHosts = ParseHostList(c.Download.AllowedHostsRaw)

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if s.SupabaseURL == "" {
		return nil
	}
	u, err := url.Parse(s.SupabaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("supabase_url must be an absolute URL (got %q)", s.SupabaseURL)
	}
	if s.APIKey() == "" {
		return fmt.Errorf("service_role_key or anon_key is required when supabase_url is set")
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", s.MaxUploadBytes)
	}
	return nil
}

func (g *GeocoderConfig) validate() error {
	if g.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", g.Timeout)
	}
	if g.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be >= 0 (got %v)", g.CacheTTL)
	}
	return nil
}
