package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "2.1"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Security    SecurityConfig
	Cache       CacheConfig
	Tracing     TracingConfig
	Environment string
	LogLevel    string
	Locale      string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
	// CORSOrigin is the allowed browser origin, "*" when empty
	CORSOrigin string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
}

// SecurityConfig holds the settings used to verify tokens issued by the
// external identity provider. The service never issues session tokens itself.
type SecurityConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Signup attempts allowed per client address within SignupWindow
	SignupAttempts int
	SignupWindow   time.Duration
}

type CacheConfig struct {
	PageTTL         time.Duration
	CleanupInterval time.Duration

	// Optional: when set, invalidation hints are also published on RedisChannel
	RedisURL     string
	RedisChannel string
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// "jaeger", "zipkin" or "none"
	TraceExporter  string
	JaegerEndpoint string
	ZipkinEndpoint string

	// "prometheus" or "none"
	MetricsExporter string
	PrometheusPort  int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "crm_app")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "crm")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOCALE", "nb")
	v.SetDefault("VERSION", VERSION)

	v.SetDefault("JWT_AUDIENCE", "authenticated")
	v.SetDefault("SIGNUP_RATE_ATTEMPTS", 5)
	v.SetDefault("SIGNUP_RATE_WINDOW", "5m")

	v.SetDefault("CACHE_PAGE_TTL", "2m")
	v.SetDefault("CACHE_CLEANUP_INTERVAL", "1m")
	v.SetDefault("CACHE_REDIS_CHANNEL", "crm:invalidate")

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "crm-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

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

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}

	locale := strings.ToLower(v.GetString("LOCALE"))
	if locale != "nb" && locale != "en" {
		return nil, fmt.Errorf("unsupported LOCALE %q (expected nb or en)", locale)
	}

	config := &Config{
		Server: ServerConfig{
			Port:       v.GetInt("SERVER_PORT"),
			Host:       v.GetString("SERVER_HOST"),
			CORSOrigin: v.GetString("SERVER_CORS_ORIGIN"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetInt("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			DBName:       v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Security: SecurityConfig{
			JWTSecret:   jwtSecret,
			JWTIssuer:   v.GetString("JWT_ISSUER"),
			JWTAudience: v.GetString("JWT_AUDIENCE"),

			SignupAttempts: v.GetInt("SIGNUP_RATE_ATTEMPTS"),
			SignupWindow:   v.GetDuration("SIGNUP_RATE_WINDOW"),
		},
		Cache: CacheConfig{
			PageTTL:         v.GetDuration("CACHE_PAGE_TTL"),
			CleanupInterval: v.GetDuration("CACHE_CLEANUP_INTERVAL"),
			RedisURL:        v.GetString("CACHE_REDIS_URL"),
			RedisChannel:    v.GetString("CACHE_REDIS_CHANNEL"),
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:       v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:      v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:      v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			MetricsExporter:     v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:      v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Locale:      locale,
		Version:     v.GetString("VERSION"),
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
