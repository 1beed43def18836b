// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment keys
const (
	EnvSkillsPath      = "RESUME_SKILLS_PATH"
	EnvModelPath       = "RESUME_MODEL_PATH"
	EnvMaxReadBytes    = "RESUME_MAX_READ_BYTES"
	EnvMinContentChars = "RESUME_MIN_CONTENT_CHARS"
	EnvLogFile         = "RESUME_LOG_FILE"
	EnvMatcher         = "RESUME_MATCHER"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvPort            = "PORT"
	EnvRequestTimeout  = "RESUME_REQUEST_TIMEOUT"
)

// Defaults
const (
	DefaultSkillsPath      = "./predict/skills.json"
	DefaultModelPath       = "./predict/model_artifacts.json"
	DefaultMaxReadBytes    = 2048
	DefaultMinContentChars = 50
	DefaultLogFile         = "predict.log"
	DefaultMatcher         = "regex"
	DefaultPort            = 8080
	DefaultRequestTimeout  = 30 * time.Second
)

// Duration is a time.Duration that reads "30s"-style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts a Go duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("invalid duration %s", string(data))
	}
	*d = Duration(time.Duration(seconds * float64(time.Second)))
	return nil
}

// MarshalJSON writes the duration as a Go duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the CLI configuration. Values come from the environment
// (after .env is loaded), then an optional JSON file, then CLI flags.
type Config struct {
	// Inputs
	SkillsPath string `json:"skills_path,omitempty" validate:"required"` // taxonomy JSON/YAML
	ModelPath  string `json:"model_path,omitempty" validate:"required"`  // classifier artifact

	// Limits
	MaxReadBytes    int `json:"max_read_bytes,omitempty" validate:"min=1"`
	MinContentChars int `json:"min_content_chars,omitempty" validate:"min=1"`

	// Behavior
	LogFile     string `json:"log_file,omitempty"`
	Matcher     string `json:"matcher,omitempty" validate:"oneof=regex trie"`
	DatabaseURL string `json:"database_url,omitempty"` // optional prediction history
	Verbose     bool   `json:"verbose,omitempty"`

	// Service
	Port           int      `json:"port,omitempty" validate:"min=1,max=65535"`
	RequestTimeout Duration `json:"request_timeout,omitempty" validate:"gt=0"`
}

// Error reports an unusable configuration
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Message, e.Cause)
	}
	return "config error: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		SkillsPath:      DefaultSkillsPath,
		ModelPath:       DefaultModelPath,
		MaxReadBytes:    DefaultMaxReadBytes,
		MinContentChars: DefaultMinContentChars,
		LogFile:         DefaultLogFile,
		Matcher:         DefaultMatcher,
		Port:            DefaultPort,
		RequestTimeout:  Duration(DefaultRequestTimeout),
	}
}

// FromEnv builds a configuration from environment lookups, falling back to
// Defaults for unset keys.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Defaults()

	if v := getenv(EnvSkillsPath); v != "" {
		cfg.SkillsPath = v
	}
	if v := getenv(EnvModelPath); v != "" {
		cfg.ModelPath = v
	}
	if v := getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := getenv(EnvMatcher); v != "" {
		cfg.Matcher = strings.ToLower(v)
	}
	cfg.DatabaseURL = getenv(EnvDatabaseURL)

	var err error
	if cfg.MaxReadBytes, err = envInt(getenv, EnvMaxReadBytes, cfg.MaxReadBytes); err != nil {
		return cfg, err
	}
	if cfg.MinContentChars, err = envInt(getenv, EnvMinContentChars, cfg.MinContentChars); err != nil {
		return cfg, err
	}
	if cfg.Port, err = envInt(getenv, EnvPort, cfg.Port); err != nil {
		return cfg, err
	}

	if v := getenv(EnvRequestTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return cfg, &Error{Message: fmt.Sprintf("%s must be a duration", EnvRequestTimeout), Cause: err}
		}
		cfg.RequestTimeout = Duration(timeout)
	}

	return cfg, nil
}

func envInt(getenv func(string) string, key string, fallback int) (int, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &Error{Message: fmt.Sprintf("%s must be an integer", key), Cause: err}
	}
	return n, nil
}

// Load loads .env (if present), reads the environment, overlays the JSON file
// at configPath when given, and validates the result.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	env, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}

	cfg := env
	if configPath != "" {
		file, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = file.MergeWithDefaults(env)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &Error{Message: fmt.Sprintf("'%s' failed '%s' (got %v)", fe.Field(), fe.Tag(), fe.Value()), Cause: err}
		}
		return &Error{Message: "invalid configuration", Cause: err}
	}
	return nil
}

// Timeout returns the per-request timeout for the HTTP service.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout)
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SkillsPath == "" {
		result.SkillsPath = defaults.SkillsPath
	}
	if result.ModelPath == "" {
		result.ModelPath = defaults.ModelPath
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}
	if result.Matcher == "" {
		result.Matcher = defaults.Matcher
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.MaxReadBytes == 0 {
		result.MaxReadBytes = defaults.MaxReadBytes
	}
	if result.MinContentChars == 0 {
		result.MinContentChars = defaults.MinContentChars
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RequestTimeout == 0 {
		result.RequestTimeout = defaults.RequestTimeout
	}

	// Bool fields: cannot distinguish unset from false
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
