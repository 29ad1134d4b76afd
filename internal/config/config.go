// Copyright (c) 2024 Neomantra Corp

// Package config loads and validates the closed set of recognized options
// (§6.4): a YAML file first, then environment-variable overrides, eagerly
// validated before any I/O as the Design Notes' "Dynamic config" section
// requires.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LogLevel is the closed set of levels §6.4 recognizes.
type LogLevel string

const (
	LogLevelDebug    LogLevel = "DEBUG"
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarning  LogLevel = "WARNING"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
)

// LogDestination is the closed set of destinations §6.4 recognizes.
type LogDestination string

const (
	LogDestinationLocal LogDestination = "local"
	LogDestinationGCP   LogDestination = "gcp"
	LogDestinationBoth  LogDestination = "both"
)

// OutputFormat is the closed set of on-disk formats §6.4 recognizes. Only
// "parquet" is implemented end-to-end; the others are recognized so a
// config file isn't rejected for naming them, but the CLI's setup returns
// a configuration error, before any I/O, if one is selected.
type OutputFormat string

const (
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatParquet OutputFormat = "parquet"
)

// Compression is the closed set of codecs §6.4 recognizes. Only "snappy"
// is implemented; see OutputFormat's note.
type Compression string

const (
	CompressionSnappy Compression = "snappy"
	CompressionGzip   Compression = "gzip"
	CompressionLZ4    Compression = "lz4"
	CompressionZstd   Compression = "zstd"
)

// Config is the closed, validated set of recognized options from §6.4.
type Config struct {
	APIKey string `yaml:"api_key"`

	BaseURL             string        `yaml:"base_url"`
	Timeout             time.Duration `yaml:"timeout"`
	MaxRetries          int           `yaml:"max_retries"`
	MaxConcurrent       int           `yaml:"max_concurrent"`
	MaxParallelUploads  int           `yaml:"max_parallel_uploads"`
	RateLimitPerVM      int           `yaml:"rate_limit_per_vm"`

	ProjectID       string `yaml:"project_id"`
	CredentialsPath string `yaml:"credentials_path"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`

	ShardIndex          int `yaml:"shard_index"`
	TotalShards         int `yaml:"total_shards"`
	InstrumentsPerShard int `yaml:"instruments_per_shard"`

	LogLevel       LogLevel       `yaml:"log_level"`
	LogDestination LogDestination `yaml:"log_destination"`
	BatchSize      int            `yaml:"batch_size"`
	MemoryEfficient bool          `yaml:"memory_efficient"`
	EnableCaching  bool           `yaml:"enable_caching"`
	CacheTTL       time.Duration  `yaml:"cache_ttl"`

	DefaultFormat OutputFormat `yaml:"default_format"`
	Compression   Compression  `yaml:"compression"`
}

// Defaults returns a Config with every non-required option set to its
// documented default. Load starts from this before applying file/env.
func Defaults() Config {
	return Config{
		BaseURL:             "https://api.tardis.dev",
		Timeout:             30 * time.Second,
		MaxRetries:          3,
		MaxConcurrent:       20,
		MaxParallelUploads:  20,
		RateLimitPerVM:      86400,
		TotalShards:         1,
		LogLevel:            LogLevelInfo,
		LogDestination:      LogDestinationLocal,
		BatchSize:           100,
		DefaultFormat:       FormatParquet,
		Compression:         CompressionSnappy,
	}
}

// Load reads a YAML config file, applies environment overrides (prefix
// TICKVAULT_), optionally loading envFile first via godotenv, and
// validates the result eagerly. Any failure here must happen before any
// network or object-store I/O, per §7(i).
func Load(path, envFile string) (Config, error) {
	cfg := Defaults()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("config: load env file %q: %w", envFile, err)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	const prefix = "TICKVAULT_"
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(prefix + key); ok {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(prefix + key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(prefix + key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(prefix + key); ok {
			*dst = strings.EqualFold(v, "true") || v == "1"
		}
	}

	str("API_KEY", &cfg.APIKey)
	str("BASE_URL", &cfg.BaseURL)
	dur("TIMEOUT", &cfg.Timeout)
	num("MAX_RETRIES", &cfg.MaxRetries)
	num("MAX_CONCURRENT", &cfg.MaxConcurrent)
	num("MAX_PARALLEL_UPLOADS", &cfg.MaxParallelUploads)
	num("RATE_LIMIT_PER_VM", &cfg.RateLimitPerVM)
	str("PROJECT_ID", &cfg.ProjectID)
	str("CREDENTIALS_PATH", &cfg.CredentialsPath)
	str("BUCKET", &cfg.Bucket)
	str("REGION", &cfg.Region)
	num("SHARD_INDEX", &cfg.ShardIndex)
	num("TOTAL_SHARDS", &cfg.TotalShards)
	num("INSTRUMENTS_PER_SHARD", &cfg.InstrumentsPerShard)
	if v, ok := os.LookupEnv(prefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = LogLevel(v)
	}
	if v, ok := os.LookupEnv(prefix + "LOG_DESTINATION"); ok {
		cfg.LogDestination = LogDestination(v)
	}
	num("BATCH_SIZE", &cfg.BatchSize)
	boolean("MEMORY_EFFICIENT", &cfg.MemoryEfficient)
	boolean("ENABLE_CACHING", &cfg.EnableCaching)
	dur("CACHE_TTL", &cfg.CacheTTL)
	if v, ok := os.LookupEnv(prefix + "DEFAULT_FORMAT"); ok {
		cfg.DefaultFormat = OutputFormat(v)
	}
	if v, ok := os.LookupEnv(prefix + "COMPRESSION"); ok {
		cfg.Compression = Compression(v)
	}
}

func (c Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config: api_key is required")
	}
	if !strings.HasPrefix(c.APIKey, "TD.") {
		return fmt.Errorf("config: api_key must have prefix \"TD.\"")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("config: base_url is required")
	}
	if c.TotalShards < 1 {
		return fmt.Errorf("config: total_shards must be >= 1")
	}
	if c.ShardIndex < 0 || c.ShardIndex >= c.TotalShards {
		return fmt.Errorf("config: shard_index %d out of range [0,%d)", c.ShardIndex, c.TotalShards)
	}
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelCritical:
	default:
		return fmt.Errorf("config: unrecognized log_level %q", c.LogLevel)
	}
	switch c.LogDestination {
	case LogDestinationLocal, LogDestinationGCP, LogDestinationBoth:
	default:
		return fmt.Errorf("config: unrecognized log_destination %q", c.LogDestination)
	}
	switch c.DefaultFormat {
	case FormatJSON, FormatCSV, FormatParquet:
	default:
		return fmt.Errorf("config: unrecognized default_format %q", c.DefaultFormat)
	}
	switch c.Compression {
	case CompressionSnappy, CompressionGzip, CompressionLZ4, CompressionZstd:
	default:
		return fmt.Errorf("config: unrecognized compression %q", c.Compression)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("config: batch_size must be >= 1")
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("config: max_concurrent must be >= 1")
	}
	if c.RateLimitPerVM < 1 {
		return fmt.Errorf("config: rate_limit_per_vm must be >= 1")
	}
	return nil
}
