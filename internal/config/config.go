package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains CORS and rate limiting configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// AnalysisConfig lifts every analysis constant into configuration so each
// is independently tunable and testable. Defaults mirror the named
// constants in constants.go.
type AnalysisConfig struct {
	AssumedAvgSpeedKMH         float64 `yaml:"assumed_avg_speed_kmh" envconfig:"ASSUMED_AVG_SPEED_KMH" default:"40"`
	SlowSpeedThresholdKMH      float64 `yaml:"slow_speed_threshold_kmh" envconfig:"SLOW_SPEED_THRESHOLD_KMH" default:"10"`
	IdleThresholdHours         float64 `yaml:"idle_threshold_hours" envconfig:"IDLE_THRESHOLD_HOURS" default:"6"`
	MaturityWindowDays         int     `yaml:"maturity_window_days" envconfig:"MATURITY_WINDOW_DAYS" default:"28"`
	RecentWindowDays           int     `yaml:"recent_window_days" envconfig:"RECENT_WINDOW_DAYS" default:"7"`
	DefaultTripCountThreshold  float64 `yaml:"default_trip_count_threshold" envconfig:"DEFAULT_TRIP_COUNT_THRESHOLD" default:"3"`
	DefaultDistanceThresholdKM float64 `yaml:"default_distance_threshold_km" envconfig:"DEFAULT_DISTANCE_THRESHOLD_KM" default:"100"`
	DriverLeaderboardSize      int     `yaml:"driver_leaderboard_size" envconfig:"DRIVER_LEADERBOARD_SIZE" default:"10"`
	HistogramBins              int     `yaml:"histogram_bins" envconfig:"HISTOGRAM_BINS" default:"20"`

	// ClampNegativeDurations decides whether End < Start collapses to a
	// zero duration. The default preserves the negative value as-is.
	ClampNegativeDurations bool `yaml:"clamp_negative_durations" envconfig:"CLAMP_NEGATIVE_DURATIONS" default:"false"`

	MaxUploadBytes int64 `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"20971520"`
}

// Load loads configuration from environment variables and, if present, a
// config file. A .env file is honored before the environment is read; env
// values take precedence over file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("FLEET", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := findConfigFile(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = merge(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge fills zero-valued env config fields from the file config, so
// explicit environment variables always win.
func merge(file, env Config) Config {
	if env.Server.Port == 0 {
		env.Server.Port = file.Server.Port
	}
	if env.Server.ReadTimeout == 0 {
		env.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if env.Server.WriteTimeout == 0 {
		env.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if env.Server.IdleTimeout == 0 {
		env.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if env.Server.ShutdownTimeout == 0 {
		env.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if len(env.Security.AllowedOrigins) == 0 {
		env.Security.AllowedOrigins = file.Security.AllowedOrigins
	}
	if env.Logging.Level == "" {
		env.Logging.Level = file.Logging.Level
	}
	if env.Logging.Output == "" {
		env.Logging.Output = file.Logging.Output
	}
	if env.Logging.FilePath == "" {
		env.Logging.FilePath = file.Logging.FilePath
	}
	if env.Analysis.AssumedAvgSpeedKMH == 0 {
		env.Analysis.AssumedAvgSpeedKMH = file.Analysis.AssumedAvgSpeedKMH
	}
	if env.Analysis.SlowSpeedThresholdKMH == 0 {
		env.Analysis.SlowSpeedThresholdKMH = file.Analysis.SlowSpeedThresholdKMH
	}
	if env.Analysis.IdleThresholdHours == 0 {
		env.Analysis.IdleThresholdHours = file.Analysis.IdleThresholdHours
	}
	if env.Analysis.MaturityWindowDays == 0 {
		env.Analysis.MaturityWindowDays = file.Analysis.MaturityWindowDays
	}
	if env.Analysis.RecentWindowDays == 0 {
		env.Analysis.RecentWindowDays = file.Analysis.RecentWindowDays
	}
	return env
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Analysis.AssumedAvgSpeedKMH <= 0 {
		return fmt.Errorf("assumed average speed must be positive")
	}
	if c.Analysis.RecentWindowDays <= 0 {
		return fmt.Errorf("recent window must be positive")
	}
	if c.Analysis.MaturityWindowDays <= 0 {
		return fmt.Errorf("maturity window must be positive")
	}
	if c.Analysis.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}
	return nil
}

func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		Analysis: AnalysisConfig{
			AssumedAvgSpeedKMH:         DefaultAssumedAvgSpeedKMH,
			SlowSpeedThresholdKMH:      DefaultSlowSpeedThresholdKMH,
			IdleThresholdHours:         DefaultIdleThresholdHours,
			MaturityWindowDays:         DefaultMaturityWindowDays,
			RecentWindowDays:           DefaultRecentWindowDays,
			DefaultTripCountThreshold:  DefaultTripCountThreshold,
			DefaultDistanceThresholdKM: DefaultDistanceThresholdKM,
			DriverLeaderboardSize:      DefaultDriverLeaderboardSize,
			HistogramBins:              DefaultHistogramBins,
			ClampNegativeDurations:     false,
			MaxUploadBytes:             DefaultMaxUploadBytes,
		},
	}
}
