package config

import (
	"net/url"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Geocoder  GeocoderConfig  `yaml:"geocoder"`
	Map       MapConfig       `yaml:"map"`
	Download  DownloadConfig  `yaml:"download"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-Ip.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// StorageConfig holds Supabase Storage settings.
type StorageConfig struct {
	SupabaseURL    string        `yaml:"supabase_url"     env:"SUPABASE_URL"`
	ServiceRoleKey string        `yaml:"service_role_key" env:"SUPABASE_SERVICE_ROLE_KEY"`
	AnonKey        string        `yaml:"anon_key"         env:"SUPABASE_ANON_KEY"`
	Timeout        time.Duration `yaml:"timeout"          env:"STORAGE_TIMEOUT"          env-default:"60s"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" env:"STORAGE_MAX_UPLOAD_BYTES" env-default:"104857600"`
}

// APIKey returns the credential used for storage requests: the service-role
// key when present, otherwise the anon key.
func (s StorageConfig) APIKey() string {
	if s.ServiceRoleKey != "" {
		return s.ServiceRoleKey
	}
	return s.AnonKey
}

// GeocoderConfig holds settings of the GSI address lookup service.
type GeocoderConfig struct {
	SearchURL  string        `yaml:"search_url"  env:"GEOCODER_SEARCH_URL"  env-default:"https://msearch.gsi.go.jp/address-search/AddressSearch"`
	ReverseURL string        `yaml:"reverse_url" env:"GEOCODER_REVERSE_URL" env-default:"https://mreversegeocoder.gsi.go.jp/reverse-geocoder/LonLatToAddress"`
	Timeout    time.Duration `yaml:"timeout"     env:"GEOCODER_TIMEOUT"     env-default:"10s"`
	CacheTTL   time.Duration `yaml:"cache_ttl"   env:"GEOCODER_CACHE_TTL"   env-default:"24h"`
}

// MapConfig holds the initial view of the map widget.
type MapConfig struct {
	CenterLat   float64 `yaml:"center_lat"  env:"MAP_CENTER_LAT"  env-default:"28.3214"`
	CenterLon   float64 `yaml:"center_lon"  env:"MAP_CENTER_LON"  env-default:"129.9259"`
	Zoom        int     `yaml:"zoom"        env:"MAP_ZOOM"        env-default:"12"`
	TileURL     string  `yaml:"tile_url"    env:"MAP_TILE_URL"    env-default:"https://cyberjapandata.gsi.go.jp/xyz/std/{z}/{x}/{y}.png"`
	Attribution string  `yaml:"attribution" env:"MAP_ATTRIBUTION" env-default:"国土地理院"`
}

// DownloadConfig holds download proxy settings.
type DownloadConfig struct {
	AllowedHostsRaw string        `yaml:"allowed_hosts" env:"DOWNLOAD_ALLOWED_HOSTS"`
	Timeout         time.Duration `yaml:"timeout"       env:"DOWNLOAD_TIMEOUT"       env-default:"60s"`

	// AllowedHosts is parsed from AllowedHostsRaw during validation.
	AllowedHosts []string `yaml:"-" env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits. Zero disables a limit.
type RateLimitConfig struct {
	UploadPerMinute   int `yaml:"upload_per_minute"   env:"RATE_LIMIT_UPLOAD_PER_MINUTE"   env-default:"10"`
	DownloadPerMinute int `yaml:"download_per_minute" env:"RATE_LIMIT_DOWNLOAD_PER_MINUTE" env-default:"60"`
}

// ParseHostList splits a comma-separated host list, lowercasing entries and
// dropping blanks.
func ParseHostList(raw string) []string {
	var hosts []string
	for _, h := range strings.Split(raw, ",") {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// StorageHost returns the host of the configured Supabase URL, or "".
func (s StorageConfig) StorageHost() string {
	u, err := url.Parse(s.SupabaseURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
