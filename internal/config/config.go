package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Upstream   UpstreamConfig
	DataViewer DataViewerConfig
	Cache      CacheConfig
	Logger     LoggerConfig
	Metrics    MetricsConfig
	Tracing    TracingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

// UpstreamConfig holds the base URLs of the services the viewers proxy to.
// An empty URL disables that service.
type UpstreamConfig struct {
	HydroShareURL  string
	GeoServerURL   string
	HydroServerURL string
	Timeout        time.Duration
}

type DataViewerConfig struct {
	IncludeFeature    bool
	IncludeRaster     bool
	IncludeTimeSeries bool
	MaxLayers         int
}

const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type CacheConfig struct {
	Backend  string
	TTL      time.Duration
	Size     int
	RedisURL string
}

type LoggerConfig struct {
	Level  string
	Format string
}

type MetricsConfig struct {
	Enabled bool
}

type TracingConfig struct {
	Enabled     bool
	Protocol    string
	ServiceName string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("HYDROSHARE_URL", "https://www.hydroshare.org")
	v.SetDefault("GEOSERVER_URL", "https://geoserver.hydroshare.org/geoserver")
	v.SetDefault("HYDROSERVER_URL", "https://geoserver.hydroshare.org/wds")
	v.SetDefault("UPSTREAM_TIMEOUT", "30s")
	v.SetDefault("INCLUDE_FEATURE", true)
	v.SetDefault("INCLUDE_RASTER", true)
	v.SetDefault("INCLUDE_TIMESERIES", true)
	v.SetDefault("MAX_LAYERS", 10)
	v.SetDefault("CACHE_BACKEND", CacheBackendMemory)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("CACHE_SIZE", 512)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	v.SetDefault("OTEL_SERVICE_NAME", "hydroshare-viewer")

	// Env
	v.AutomaticEnv()

	backend := strings.ToLower(strings.TrimSpace(v.GetString("CACHE_BACKEND")))
	switch backend {
	case CacheBackendNone, CacheBackendMemory, CacheBackendRedis:
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: parseDuration(v.GetString("SERVER_SHUTDOWN_TIMEOUT"), 10*time.Second),
		},
		Upstream: UpstreamConfig{
			HydroShareURL:  NormalizeURL(v.GetString("HYDROSHARE_URL")),
			GeoServerURL:   NormalizeURL(v.GetString("GEOSERVER_URL")),
			HydroServerURL: NormalizeURL(v.GetString("HYDROSERVER_URL")),
			Timeout:        parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 30*time.Second),
		},
		DataViewer: DataViewerConfig{
			IncludeFeature:    v.GetBool("INCLUDE_FEATURE"),
			IncludeRaster:     v.GetBool("INCLUDE_RASTER"),
			IncludeTimeSeries: v.GetBool("INCLUDE_TIMESERIES"),
			MaxLayers:         v.GetInt("MAX_LAYERS"),
		},
		Cache: CacheConfig{
			Backend:  backend,
			TTL:      parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
			Size:     v.GetInt("CACHE_SIZE"),
			RedisURL: v.GetString("REDIS_URL"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("TRACING_ENABLED"),
			Protocol:    v.GetString("OTEL_EXPORTER_OTLP_PROTOCOL"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
		},
	}

	return cfg, nil
}

func (c *Config) HydroShareEnabled() bool  { return c.Upstream.HydroShareURL != "" }
func (c *Config) GeoServerEnabled() bool   { return c.Upstream.GeoServerURL != "" }
func (c *Config) HydroServerEnabled() bool { return c.Upstream.HydroServerURL != "" }

// NormalizeURL trims trailing slashes and maps the "None" placeholder used by
// portal app settings to an empty (disabled) URL.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "none") {
		return ""
	}
	return strings.TrimRight(s, "/")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
