// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/jobboard/internal/storage"
)

// Config represents the service configuration. It can be loaded from a JSON
// or YAML file; environment variables override file values and CLI flags
// override both.
type Config struct {
	// Server
	Addr           string  `json:"addr,omitempty" yaml:"addr,omitempty"`                       // Listen address
	MaxUploadMB    int     `json:"max_upload_mb,omitempty" yaml:"max_upload_mb,omitempty"`     // Upload size cap
	RateLimitRPS   float64 `json:"rate_limit_rps,omitempty" yaml:"rate_limit_rps,omitempty"`   // Per-client request rate
	RateLimitBurst int     `json:"rate_limit_burst,omitempty" yaml:"rate_limit_burst,omitempty"`

	// Backends
	DatabaseURL   string         `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	RedisAddr     string         `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`     // Enables the distributed profile lock
	RedisPassword string         `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
	LockTTLSec    int            `json:"lock_ttl_seconds,omitempty" yaml:"lock_ttl_seconds,omitempty"`
	Storage       storage.Config `json:"storage,omitempty" yaml:"storage,omitempty"` // Upload archive; disabled without an endpoint

	// Extraction
	APIKey         string `json:"api_key,omitempty" yaml:"api_key,omitempty"`         // Gemini API key
	Model          string `json:"model,omitempty" yaml:"model,omitempty"`             // Overrides the extraction model
	OCRModel       string `json:"ocr_model,omitempty" yaml:"ocr_model,omitempty"`     // Overrides the lite model (transcription, autofill)
	OCRBackend     string `json:"ocr_backend,omitempty" yaml:"ocr_backend,omitempty"` // gemini or tesseract
	TesseractPath  string `json:"tesseract_path,omitempty" yaml:"tesseract_path,omitempty"`
	TesseractLang  string `json:"tesseract_lang,omitempty" yaml:"tesseract_lang,omitempty"`
	MinTextLength  int    `json:"min_text_length,omitempty" yaml:"min_text_length,omitempty"`
	CallTimeoutSec int    `json:"call_timeout_seconds,omitempty" yaml:"call_timeout_seconds,omitempty"` // Per OCR/model call
	MaxRetries     int    `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`   // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // pretty or json
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:           ":8080",
		MaxUploadMB:    10,
		RateLimitRPS:   5,
		RateLimitBurst: 10,
		LockTTLSec:     30,
		OCRBackend:     "gemini",
		TesseractPath:  "tesseract",
		TesseractLang:  "eng",
		MinTextLength:  50,
		CallTimeoutSec: 60,
		MaxRetries:     0,
		LogLevel:       "info",
		LogFormat:      "pretty",
		Storage:        storage.Config{Bucket: "resumes"},
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"ADDR":             &c.Addr,
		"DATABASE_URL":     &c.DatabaseURL,
		"REDIS_ADDR":       &c.RedisAddr,
		"REDIS_PASSWORD":   &c.RedisPassword,
		"GEMINI_API_KEY":   &c.APIKey,
		"GEMINI_MODEL":     &c.Model,
		"GEMINI_OCR_MODEL": &c.OCRModel,
		"OCR_BACKEND":      &c.OCRBackend,
		"TESSERACT_PATH":   &c.TesseractPath,
		"TESSERACT_LANG":   &c.TesseractLang,
		"LOG_LEVEL":        &c.LogLevel,
		"LOG_FORMAT":       &c.LogFormat,
		"MINIO_ENDPOINT":   &c.Storage.Endpoint,
		"MINIO_ACCESS_KEY": &c.Storage.AccessKeyID,
		"MINIO_SECRET_KEY": &c.Storage.SecretAccessKey,
		"MINIO_BUCKET":     &c.Storage.Bucket,
		"MINIO_REGION":     &c.Storage.Region,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"MAX_UPLOAD_MB":        &c.MaxUploadMB,
		"RATE_LIMIT_BURST":     &c.RateLimitBurst,
		"LOCK_TTL_SECONDS":     &c.LockTTLSec,
		"MIN_TEXT_LENGTH":      &c.MinTextLength,
		"CALL_TIMEOUT_SECONDS": &c.CallTimeoutSec,
		"MAX_RETRIES":          &c.MaxRetries,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", key, err)
		}
		*dst = n
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS: %v", err)
		}
		c.RateLimitRPS = f
	}
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid MINIO_USE_SSL: %v", err)
		}
		c.Storage.UseSSL = b
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those depend on the
// command being run.
func (c *Config) Validate() error {
	switch c.OCRBackend {
	case "", "gemini", "tesseract":
	default:
		return fmt.Errorf("config error: 'ocr_backend' must be gemini or tesseract, got %q", c.OCRBackend)
	}
	switch c.LogFormat {
	case "", "pretty", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be pretty or json, got %q", c.LogFormat)
	}

	// Validate numeric ranges
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("config error: 'max_upload_mb' must be non-negative")
	}
	if c.MinTextLength < 0 {
		return fmt.Errorf("config error: 'min_text_length' must be non-negative")
	}
	if c.CallTimeoutSec < 0 {
		return fmt.Errorf("config error: 'call_timeout_seconds' must be non-negative")
	}
	if c.MaxRetries < 0 || c.MaxRetries > 5 {
		return fmt.Errorf("config error: 'max_retries' must be between 0 and 5")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: rate limits must be non-negative")
	}
	if c.LockTTLSec < 0 {
		return fmt.Errorf("config error: 'lock_ttl_seconds' must be non-negative")
	}

	if c.OCRBackend == "tesseract" && c.TesseractPath != "" && strings.ContainsRune(c.TesseractPath, os.PathSeparator) {
		if _, err := os.Stat(c.TesseractPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: tesseract binary not found: %s", c.TesseractPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fillString(&result.Addr, defaults.Addr)
	fillString(&result.DatabaseURL, defaults.DatabaseURL)
	fillString(&result.RedisAddr, defaults.RedisAddr)
	fillString(&result.RedisPassword, defaults.RedisPassword)
	fillString(&result.APIKey, defaults.APIKey)
	fillString(&result.Model, defaults.Model)
	fillString(&result.OCRModel, defaults.OCRModel)
	fillString(&result.OCRBackend, defaults.OCRBackend)
	fillString(&result.TesseractPath, defaults.TesseractPath)
	fillString(&result.TesseractLang, defaults.TesseractLang)
	fillString(&result.LogLevel, defaults.LogLevel)
	fillString(&result.LogFormat, defaults.LogFormat)
	fillString(&result.Storage.Endpoint, defaults.Storage.Endpoint)
	fillString(&result.Storage.AccessKeyID, defaults.Storage.AccessKeyID)
	fillString(&result.Storage.SecretAccessKey, defaults.Storage.SecretAccessKey)
	fillString(&result.Storage.Bucket, defaults.Storage.Bucket)
	fillString(&result.Storage.Region, defaults.Storage.Region)

	// Int fields: use default if zero
	fillInt(&result.MaxUploadMB, defaults.MaxUploadMB)
	fillInt(&result.RateLimitBurst, defaults.RateLimitBurst)
	fillInt(&result.LockTTLSec, defaults.LockTTLSec)
	fillInt(&result.MinTextLength, defaults.MinTextLength)
	fillInt(&result.CallTimeoutSec, defaults.CallTimeoutSec)
	fillInt(&result.MaxRetries, defaults.MaxRetries)

	if result.RateLimitRPS == 0 {
		result.RateLimitRPS = defaults.RateLimitRPS
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

// Load resolves the effective configuration: file (optional), then
// environment, then defaults for anything still unset.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// MaxUploadBytes is the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// CallTimeout is the per-call deadline for OCR and model requests.
func (c *Config) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSec) * time.Second
}

// LockTTL is the expiry of a distributed profile lock.
func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSec) * time.Second
}

func fillString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func fillInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}
