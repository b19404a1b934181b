package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Import      ImportConfig
	Campaign    CampaignConfig
	Storage     StorageConfig
	RateLimit   RateLimitConfig
	Tracing     TracingConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
	// AllowedOrigins is the CORS allow-list for the builder UI, "*" allows any
	AllowedOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ImportConfig bounds the contact import pipeline
type ImportConfig struct {
	MaxUploadBytes    int64
	PreviewLimit      int
	SampleRows        int
	SessionTTL        time.Duration
	SheetFetchTimeout time.Duration
}

// CampaignConfig controls personalized page generation
type CampaignConfig struct {
	// PublicURL prefixes generated /view/{token} links
	PublicURL       string
	PageTokenSecret string
	PageTokenTTL    time.Duration
	Concurrency     int
}

// StorageConfig locates the bucket section media is uploaded to
type StorageConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	MaxMediaBytes int64
}

// RateLimitConfig caps requests per minute, zero disables a limit
type RateLimitConfig struct {
	ImportsPerMinute     int
	PublicViewsPerMinute int
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// Trace exporter configuration
	TraceExporter string // "jaeger", "stackdriver", "zipkin", "datadog", "xray", "none"

	// Jaeger settings
	JaegerEndpoint string

	// Zipkin settings
	ZipkinEndpoint string

	// Stackdriver settings
	StackdriverProjectID string

	// Datadog settings
	DatadogAgentAddress string
	DatadogAPIKey       string

	// AWS X-Ray settings
	XRayRegion string

	// General agent endpoint (for exporters that support a common agent)
	AgentEndpoint string

	// Metrics exporter configuration
	MetricsExporter string // "prometheus", "stackdriver", "datadog", "none" or comma-separated list
	PrometheusPort  int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "pagekit")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "20m")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Import defaults
	v.SetDefault("IMPORT_MAX_UPLOAD_BYTES", 5*1024*1024)
	v.SetDefault("IMPORT_PREVIEW_LIMIT", 10)
	v.SetDefault("IMPORT_SAMPLE_ROWS", 3)
	v.SetDefault("IMPORT_SESSION_TTL", "30m")
	v.SetDefault("IMPORT_SHEET_FETCH_TIMEOUT", "15s")

	// Campaign defaults
	v.SetDefault("CAMPAIGN_PUBLIC_URL", "http://localhost:8080")
	v.SetDefault("CAMPAIGN_PAGE_TOKEN_TTL", "0s")
	v.SetDefault("CAMPAIGN_CONCURRENCY", 8)

	// Storage defaults
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_MAX_MEDIA_BYTES", 10*1024*1024)

	// Rate limit defaults
	v.SetDefault("RATE_LIMIT_IMPORTS_PER_MINUTE", 30)
	v.SetDefault("RATE_LIMIT_PUBLIC_VIEWS_PER_MINUTE", 300)

	// Default tracing config
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "pagekit-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_STACKDRIVER_PROJECT_ID", "")
	v.SetDefault("TRACING_DATADOG_AGENT_ADDRESS", "localhost:8126")
	v.SetDefault("TRACING_DATADOG_API_KEY", "")
	v.SetDefault("TRACING_XRAY_REGION", "us-west-2")
	v.SetDefault("TRACING_AGENT_ENDPOINT", "localhost:8126")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Validate required configuration
	pageTokenSecret := v.GetString("PAGE_TOKEN_SECRET")
	if pageTokenSecret == "" {
		return nil, fmt.Errorf("PAGE_TOKEN_SECRET is required")
	}

	config := &Config{
		Server: ServerConfig{
			Port:           v.GetInt("SERVER_PORT"),
			Host:           v.GetString("SERVER_HOST"),
			AllowedOrigins: v.GetString("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),

			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Import: ImportConfig{
			MaxUploadBytes:    v.GetInt64("IMPORT_MAX_UPLOAD_BYTES"),
			PreviewLimit:      v.GetInt("IMPORT_PREVIEW_LIMIT"),
			SampleRows:        v.GetInt("IMPORT_SAMPLE_ROWS"),
			SessionTTL:        v.GetDuration("IMPORT_SESSION_TTL"),
			SheetFetchTimeout: v.GetDuration("IMPORT_SHEET_FETCH_TIMEOUT"),
		},
		Campaign: CampaignConfig{
			PublicURL:       v.GetString("CAMPAIGN_PUBLIC_URL"),
			PageTokenSecret: pageTokenSecret,
			PageTokenTTL:    v.GetDuration("CAMPAIGN_PAGE_TOKEN_TTL"),
			Concurrency:     v.GetInt("CAMPAIGN_CONCURRENCY"),
		},
		Storage: StorageConfig{
			Bucket:        v.GetString("STORAGE_BUCKET"),
			Region:        v.GetString("STORAGE_REGION"),
			Endpoint:      v.GetString("STORAGE_ENDPOINT"),
			AccessKey:     v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey:     v.GetString("STORAGE_SECRET_KEY"),
			PublicBaseURL: v.GetString("STORAGE_PUBLIC_BASE_URL"),
			MaxMediaBytes: v.GetInt64("STORAGE_MAX_MEDIA_BYTES"),
		},
		RateLimit: RateLimitConfig{
			ImportsPerMinute:     v.GetInt("RATE_LIMIT_IMPORTS_PER_MINUTE"),
			PublicViewsPerMinute: v.GetInt("RATE_LIMIT_PUBLIC_VIEWS_PER_MINUTE"),
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),

			TraceExporter: v.GetString("TRACING_TRACE_EXPORTER"),

			JaegerEndpoint: v.GetString("TRACING_JAEGER_ENDPOINT"),

			ZipkinEndpoint: v.GetString("TRACING_ZIPKIN_ENDPOINT"),

			StackdriverProjectID: v.GetString("TRACING_STACKDRIVER_PROJECT_ID"),

			DatadogAgentAddress: v.GetString("TRACING_DATADOG_AGENT_ADDRESS"),
			DatadogAPIKey:       v.GetString("TRACING_DATADOG_API_KEY"),

			XRayRegion: v.GetString("TRACING_XRAY_REGION"),

			AgentEndpoint: v.GetString("TRACING_AGENT_ENDPOINT"),

			MetricsExporter: v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:  v.GetInt("TRACING_PROMETHEUS_PORT"),
		},

		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	if config.Import.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("IMPORT_MAX_UPLOAD_BYTES must be positive")
	}
	if config.Campaign.Concurrency <= 0 {
		return nil, fmt.Errorf("CAMPAIGN_CONCURRENCY must be positive")
	}

	return config, nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasStorage reports whether media uploads can be served
func (c *Config) HasStorage() bool {
	return c.Storage.Bucket != ""
}
